package main

import (
	"crm/internal/api"

	"github.com/sirupsen/logrus"
)

// @title College CRM API
// @version 1.0
// @description Колледжи, контакты, встречи, курсы, модели цен и сделки.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")
	api.StartServer()
	logrus.Info("App terminated")
}
