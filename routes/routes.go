package routes

import (
	"time"

	"library_lending_api/app"
	"library_lending_api/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	appSess := a.Sessions()
	authCtl := controllers.GetAuthController(a.Repo, appSess)
	userCtl := controllers.GetUserController(a.Repo, appSess)
	authorCtl := controllers.NewAuthorController(a.Repo)
	bookCtl := controllers.NewBookController(a.Repo)
	borrowCtl := controllers.NewBorrowController(a.Repo)

	// 复用的中间件
	authMW := app.AuthRequired(appSess, a.Repo)
	seenMW := app.TouchLastSeen(a.Repo, a.RDB, 5*time.Minute)

	api := r.Group("/api")

	// ------------------------------
	// Auth（公开 + 受保护）
	// ------------------------------
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}
	authed := api.Group("/auth", authMW, seenMW)
	{
		authed.GET("/me", authCtl.Me)
		authed.POST("/logout", authCtl.Logout)
	}

	// ------------------------------
	// 用户管理（需登录）
	// ------------------------------
	users := api.Group("/users", authMW, seenMW)
	{
		users.GET("", userCtl.ListUsers)
		users.POST("", userCtl.CreateUser)
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
		users.GET("/:id/borrowed", borrowCtl.ListBorrowed) // ?active=true|false
	}

	// ------------------------------
	// 目录：作者 / 书（读公开，写需登录）
	// ------------------------------
	authors := api.Group("/authors")
	{
		authors.GET("", authorCtl.ListAuthors)
		authors.GET("/:id", authorCtl.GetAuthor)
	}
	authorsW := api.Group("/authors", authMW, seenMW)
	{
		authorsW.POST("", authorCtl.CreateAuthor)
		authorsW.PATCH("/:id", authorCtl.UpdateAuthor)
		authorsW.DELETE("/:id", authorCtl.DeleteAuthor)
	}

	books := api.Group("/books")
	{
		books.GET("", bookCtl.ListBooks) // ?authorId=&isBorrowed=
		books.GET("/:id", bookCtl.GetBook)
	}
	booksW := api.Group("/books", authMW, seenMW)
	{
		booksW.POST("", bookCtl.CreateBook)
		booksW.PATCH("/:id", bookCtl.UpdateBook)
		booksW.DELETE("/:id", bookCtl.DeleteBook)
	}

	// ------------------------------
	// 借还
	// ------------------------------
	borrow := api.Group("/borrow", authMW, seenMW)
	{
		borrow.POST("", borrowCtl.Borrow)
		borrow.POST("/:id/return", borrowCtl.Return)
	}
}
