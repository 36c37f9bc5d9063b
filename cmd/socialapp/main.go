package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"socialapp/pkg/handlers"
	"socialapp/pkg/middleware"
	"socialapp/pkg/posts"
	"socialapp/pkg/session"
	"socialapp/pkg/user"
	"socialapp/pkg/votes"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The composite primary key on votes is the arbiter for concurrent likes;
// the cascades keep the ledger consistent when a post or user goes away.
var createSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id int(11) unsigned NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		password VARBINARY(100) NOT NULL,
		created DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY email_uniq (email)
	) ENGINE=INNODB DEFAULT CHARSET=utf8;`,
	`CREATE TABLE IF NOT EXISTS posts (
		id int(11) unsigned NOT NULL AUTO_INCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		published BOOLEAN NOT NULL DEFAULT TRUE,
		owner_id int(11) unsigned NOT NULL,
		created DATETIME NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT posts_owner FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=INNODB DEFAULT CHARSET=utf8;`,
	`CREATE TABLE IF NOT EXISTS votes (
		post_id int(11) unsigned NOT NULL,
		user_id int(11) unsigned NOT NULL,
		PRIMARY KEY (post_id, user_id),
		CONSTRAINT votes_post FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE,
		CONSTRAINT votes_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=INNODB DEFAULT CHARSET=utf8;`,
}

func main() {
	godotenv.Load()

	app := &Application{
		MySQLConnectionString: mysqlDSN(),
		ServerAddr:            getEnv("SERVER_ADDR", "127.0.0.1:8000"),
		TokenSecret:           getEnv("SECRET_KEY", ""),
		TokenTTL:              time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
	}

	app.Run()
}

type Application struct {
	MySQLConnectionString string
	ServerAddr            string
	TokenSecret           string
	TokenTTL              time.Duration

	HTTPServer *http.Server
}

func (a *Application) Run() {
	if a.TokenSecret == "" {
		panic("SECRET_KEY must be set")
	}

	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync() // flushes buffer, if any
	logger := zapLogger.Sugar()

	db, err := sql.Open("mysql", a.MySQLConnectionString)
	if err != nil {
		panic(err.Error())
	}

	defer db.Close()
	err = db.Ping()
	if err != nil {
		panic(err)
	}

	for _, stmt := range createSchema {
		_, err = db.Exec(stmt)
		if err != nil {
			panic(err)
		}
	}

	sm := session.NewSessionsJWTManager([]byte(a.TokenSecret), a.TokenTTL)

	userRepo := user.NewUserRepoSQL(db)
	postsRepo := posts.NewPostsRepoSQL(db)
	votesRepo := votes.NewVotesRepoSQL(db)
	voteService := votes.NewVoteService(postsRepo, votesRepo)

	userHandler := &handlers.UserHandler{
		Sm:     sm,
		Repo:   userRepo,
		Logger: logger,
	}
	postsHandler := &handlers.PostHandler{
		PostsRepo: postsRepo,
		Logger:    logger,
	}
	voteHandler := &handlers.VoteHandler{
		Service: voteService,
		Logger:  logger,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/").Subrouter()

	api.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/{user_id}", userHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/users/{user_id}", userHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/posts", postsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/posts", postsHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/posts/latest/{count}", postsHandler.GetLatest).Methods(http.MethodGet)
	api.HandleFunc("/posts/{post_id}", postsHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/posts/{post_id}", postsHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/posts/{post_id}", postsHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/vote", voteHandler.Vote).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResponse(w, "not found", http.StatusNotFound)
	})

	h := middleware.Auth(logger, sm, userRepo, r)
	h = middleware.Log(logger, h)
	h = middleware.Recover(logger, h)

	srv := &http.Server{
		Handler:      h,
		Addr:         a.ServerAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	a.HTTPServer = srv

	logger.Infof("Started server at %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

// parseTime is required so DATETIME columns scan into time.Time.
func mysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		getEnv("DATABASE_USERNAME", "root"),
		getEnv("DATABASE_PASSWORD", ""),
		getEnv("DATABASE_HOSTNAME", "localhost"),
		getEnv("DATABASE_PORT", "3306"),
		getEnv("DATABASE_NAME", "socialapp"),
	)
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getEnvInt(key string, def int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return def
}
