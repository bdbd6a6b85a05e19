package main

import (
	"context"
	"log"
	"os"

	"library_lending_api/app"
	"library_lending_api/config"
	"library_lending_api/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	app.BootstrapFirstLibrarian(context.Background(), application.Config, application.Repo)

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
