package util

type Envelope map[string]any

func Msg(message string) Envelope {
	return Envelope{"msg": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
