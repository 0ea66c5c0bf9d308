package main

import (
	"html/template"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flashmart/internal/config"
	"flashmart/internal/database"
	"flashmart/internal/handlers"
	"flashmart/internal/services"
	"flashmart/internal/session"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.DSN())
	if err != nil {
		log.Fatalf("Database init failed: %v", err)
	}

	sessions := session.NewStore()
	email := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	h := handlers.NewHandler(db, sessions, email)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// One template set per page, all sharing the base layout.
	templateFiles := map[string][]string{
		"home.html":           {"templates/home.html", "templates/base.html"},
		"product_detail.html": {"templates/product_detail.html", "templates/base.html"},
		"cart.html":           {"templates/cart.html", "templates/base.html"},
		"checkout.html":       {"templates/checkout.html", "templates/base.html"},
		"order_success.html":  {"templates/order_success.html", "templates/base.html"},
		"login.html":          {"templates/login.html", "templates/base.html"},
		"register.html":       {"templates/register.html", "templates/base.html"},
	}

	templates := map[string]*template.Template{}
	for name, files := range templateFiles {
		tmpl, err := template.New(name).Funcs(handlers.TemplateFuncs).ParseFiles(files...)
		if err != nil {
			log.Fatalf("Template %s failed to load: %v", name, err)
		}
		templates[name] = tmpl
	}
	r.HTMLRender = &handlers.HTMLRenderer{Templates: templates}

	r.Static("/static", "./static")

	// Storefront
	r.GET("/", h.HomePage)
	r.GET("/product/:slug", h.ProductPage)

	// Cart
	r.GET("/cart", h.CartPage)
	r.POST("/cart/add/:id", h.AddToCart)
	r.POST("/cart/update/:id", h.UpdateCartItem)
	r.POST("/cart/remove/:id", h.RemoveFromCart)
	r.GET("/cart/remove/:id", h.RemoveFromCart)
	r.POST("/cart/clear", h.ClearCart)
	r.GET("/cart/clear", h.ClearCart)
	r.GET("/cart/count", h.GetCartCount)

	// Checkout
	r.GET("/checkout", h.CheckoutPage)
	r.POST("/checkout", h.HandleCheckout)
	r.GET("/order-success", h.OrderSuccessPage)

	// Accounts
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.HandleLogin)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.HandleRegister)
	r.GET("/logout", h.UserLogout)

	log.Printf("Starting storefront on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
