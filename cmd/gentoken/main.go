package main

import (
	"flag"
	"fmt"
	"os"

	"go-inventory-core/pkg/jwt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Small operator tool: mint a bearer token for calling the API directly,
// e.g. from curl during development.
func main() {
	subject := flag.String("subject", "operator", "token subject")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}

	token, err := jwt.GenerateToken(*subject)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		os.Exit(1)
	}

	fmt.Println(token)
}
