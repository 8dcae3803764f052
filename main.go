package main

import (
	"os"

	"github.com/Meghanadh2306/physio-website/Models"
	"github.com/Meghanadh2306/physio-website/Routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5500", "https://physio-website-nih7.onrender.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	Routes.ConfigRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5500"
	}
	router.Run(":" + port)
}
