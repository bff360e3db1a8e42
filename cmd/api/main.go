package main

import (
	"io"
	"log"
	"os"

	"github.com/evangadi/forum-backend/internal/config"
	"github.com/evangadi/forum-backend/internal/logging"
	"github.com/evangadi/forum-backend/internal/repository/postgres"
	"github.com/evangadi/forum-backend/internal/service"
	transporthttp "github.com/evangadi/forum-backend/internal/transport/http"
	"github.com/evangadi/forum-backend/internal/transport/mail"
	"github.com/evangadi/forum-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewTCPWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("log shipping disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	answerRepo := postgres.NewAnswerRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	authService := service.NewAuthService(userRepo, sessionRepo, jwtManager)
	resetService := service.NewPasswordResetService(userRepo, resetRepo, mailer, jwtManager, cfg.ResetOTPTTL, cfg.ResetOTPLength, cfg.ResetTokenTTL)
	questionService := service.NewQuestionService(questionRepo)
	answerService := service.NewAnswerService(answerRepo, questionRepo)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService, resetService)
	transporthttp.RegisterQuestions(e, authService, questionService)
	transporthttp.RegisterAnswers(e, authService, answerService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
