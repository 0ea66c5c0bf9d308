package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flashmart/internal/models"
	"flashmart/internal/services"
	"flashmart/internal/session"
)

// Query limits for the home page, mirroring the storefront layout.
const (
	homeProductLimit    = 48
	flashSaleLimit      = 20
	relatedProductLimit = 8
)

const sessionCookie = "session_id"

// DBInterface lists the persistence operations the storefront uses.
type DBInterface interface {
	ActiveProducts(query, categorySlug string, limit int) ([]models.Product, error)
	ProductBySlug(slug string) (*models.Product, error)
	ProductByID(id uint) (*models.Product, error)
	FlashSaleProducts(now time.Time, limit int) ([]models.Product, error)
	RelatedProducts(categoryID *uint, excludeID uint, limit int) ([]models.Product, error)
	FirstActiveProductImage(categoryID uint) (string, error)
	Categories() ([]models.Category, error)
	CategoryBySlug(slug string) (*models.Category, error)
	FeaturedBanners() ([]models.Banner, error)
	CreateOrder(order *models.Order) error
	OrderByNumber(number string) (*models.Order, error)
	CreateUser(user *models.User) error
	UserByUsername(username string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
}

// Handler serves all storefront routes.
type Handler struct {
	db       DBInterface
	sessions *session.Store
	cart     *services.CartService
	checkout *services.CheckoutService
	email    *services.EmailService
	security *services.SecurityLogger
}

// NewHandler wires the services over the shared store.
func NewHandler(db DBInterface, sessions *session.Store, email *services.EmailService) *Handler {
	cart := services.NewCartService(db)
	return &Handler{
		db:       db,
		sessions: sessions,
		cart:     cart,
		checkout: services.NewCheckoutService(db, cart),
		email:    email,
		security: services.NewSecurityLogger(),
	}
}

// sessionID returns the visitor's session id, issuing a cookie on first
// contact.
func (h *Handler) sessionID(c *gin.Context) string {
	id, _ := c.Cookie(sessionCookie)
	if id == "" {
		id = uuid.New().String()
		c.SetCookie(sessionCookie, id, 3600*24*30, "/", "", false, true)
	}
	return id
}

func (h *Handler) currentUser(c *gin.Context) *models.User {
	username, _ := c.Cookie("username")
	if username == "" {
		return nil
	}
	user, err := h.db.UserByUsername(username)
	if err != nil {
		return nil
	}
	return user
}

// pageContext adds the ambient keys every page expects.
func (h *Handler) pageContext(c *gin.Context, sid string, ctx gin.H) gin.H {
	username, _ := c.Cookie("username")
	ctx["flashes"] = h.sessions.Flashes(sid)
	ctx["isLoggedIn"] = username != ""
	ctx["username"] = username
	ctx["cartCount"] = h.cart.Count(h.sessions.Cart(sid))
	return ctx
}

func (h *Handler) redirectBack(c *gin.Context, fallback string) {
	if ref := c.GetHeader("Referer"); ref != "" {
		c.Redirect(http.StatusSeeOther, ref)
		return
	}
	c.Redirect(http.StatusSeeOther, fallback)
}

// HomePage renders the storefront landing page: searchable product grid,
// category tiles, featured banners and the running flash sale. A failing
// catalog read degrades to a warning banner over empty collections.
func (h *Handler) HomePage(c *gin.Context) {
	sid := h.sessionID(c)
	query := strings.TrimSpace(c.Query("q"))
	categorySlug := strings.TrimSpace(c.Query("cat"))

	var (
		products      []models.Product
		categories    []models.Category
		tiles         []models.CategoryTile
		banners       []models.Banner
		flashProducts []models.Product
		flashEndsAt   *time.Time
	)

	err := func() error {
		var err error
		if products, err = h.db.ActiveProducts(query, categorySlug, homeProductLimit); err != nil {
			return err
		}
		if categories, err = h.db.Categories(); err != nil {
			return err
		}
		tiles = h.categoryTiles(categories)
		if banners, err = h.db.FeaturedBanners(); err != nil {
			return err
		}
		if flashProducts, err = h.db.FlashSaleProducts(time.Now(), flashSaleLimit); err != nil {
			return err
		}
		for i := range flashProducts {
			end := flashProducts[i].FlashSaleEnd
			if end == nil {
				continue
			}
			if flashEndsAt == nil || end.Before(*flashEndsAt) {
				flashEndsAt = end
			}
		}
		return nil
	}()
	if err != nil {
		log.Printf("HomePage - catalog read failed: %v", err)
		h.sessions.AddFlash(sid, session.FlashWarning, "The product catalog is temporarily unavailable. Please try again in a moment.")
		products, categories, tiles, banners, flashProducts, flashEndsAt = nil, nil, nil, nil, nil, nil
	}

	c.HTML(http.StatusOK, "home.html", h.pageContext(c, sid, gin.H{
		"title":             "FlashMart",
		"products":          products,
		"categories":        categories,
		"categoryTiles":     tiles,
		"banners":           banners,
		"flashSaleProducts": flashProducts,
		"flashSaleEndsAt":   flashEndsAt,
		"currentQuery":      query,
		"currentCategory":   categorySlug,
	}))
}

// categoryTiles builds the home-page tiles: category image first, then the
// newest product image in the category, then a placeholder with the
// category initial.
func (h *Handler) categoryTiles(categories []models.Category) []models.CategoryTile {
	tiles := make([]models.CategoryTile, 0, len(categories))
	for _, cat := range categories {
		thumb := cat.ImageURL
		if thumb == "" {
			if img, err := h.db.FirstActiveProductImage(cat.ID); err == nil {
				thumb = img
			}
		}
		if thumb == "" {
			initial := "?"
			if runes := []rune(cat.Name); len(runes) > 0 {
				initial = strings.ToUpper(string(runes[0]))
			}
			thumb = fmt.Sprintf("https://via.placeholder.com/100/fff0ec/ee4d2d?text=%s", initial)
		}
		tiles = append(tiles, models.CategoryTile{Name: cat.Name, Slug: cat.Slug, ImageURL: thumb})
	}
	return tiles
}

// ProductPage renders a product detail page with up to eight related
// products from the same category.
func (h *Handler) ProductPage(c *gin.Context) {
	sid := h.sessionID(c)
	slug := c.Param("slug")

	product, err := h.db.ProductBySlug(slug)
	if err != nil {
		log.Printf("ProductPage - %q: %v", slug, err)
		h.sessions.AddFlash(sid, session.FlashError, "Product not found.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	related, err := h.db.RelatedProducts(product.CategoryID, product.ID, relatedProductLimit)
	if err != nil {
		log.Printf("ProductPage - related products for %q: %v", slug, err)
		related = nil
	}

	c.HTML(http.StatusOK, "product_detail.html", h.pageContext(c, sid, gin.H{
		"title":           product.Name,
		"product":         product,
		"colors":          product.ColorList(),
		"isInFlashSale":   product.IsInFlashSale(time.Now()),
		"discountPercent": product.FlashDiscountPercent(),
		"relatedProducts": related,
	}))
}

// CartPage renders the materialized cart.
func (h *Handler) CartPage(c *gin.Context) {
	sid := h.sessionID(c)
	lines, total := h.cart.Materialize(h.sessions.Cart(sid))

	c.HTML(http.StatusOK, "cart.html", h.pageContext(c, sid, gin.H{
		"title": "Your Cart",
		"items": lines,
		"total": total,
	}))
}

// AddToCart adds the requested quantity (default 1) of a product.
func (h *Handler) AddToCart(c *gin.Context) {
	sid := h.sessionID(c)
	productID := c.Param("id")
	qty, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		qty = 1
	}

	cart := h.sessions.Cart(sid)
	next, notice := h.cart.Add(cart, productID, qty)
	h.sessions.SaveCart(sid, next)
	h.sessions.AddFlash(sid, notice.Level, notice.Text)
	h.redirectBack(c, "/cart")
}

// UpdateCartItem sets a line quantity; zero removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sid := h.sessionID(c)
	productID := c.Param("id")
	qty, err := strconv.Atoi(c.DefaultPostForm("quantity", "0"))
	if err != nil {
		qty = 0
	}

	cart := h.sessions.Cart(sid)
	next, notice := h.cart.Update(cart, productID, qty)
	h.sessions.SaveCart(sid, next)
	h.sessions.AddFlash(sid, notice.Level, notice.Text)
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveFromCart deletes a line; removing an absent line is a no-op.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	sid := h.sessionID(c)
	productID := c.Param("id")

	h.sessions.SaveCart(sid, h.cart.Remove(h.sessions.Cart(sid), productID))
	h.sessions.AddFlash(sid, session.FlashInfo, "Item removed from your cart.")
	c.Redirect(http.StatusSeeOther, "/cart")
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	sid := h.sessionID(c)
	h.sessions.SaveCart(sid, h.cart.Clear())
	h.sessions.AddFlash(sid, session.FlashInfo, "Your cart has been cleared.")
	c.Redirect(http.StatusSeeOther, "/cart")
}

// GetCartCount reports the cart badge count as JSON.
func (h *Handler) GetCartCount(c *gin.Context) {
	sid := h.sessionID(c)
	c.JSON(http.StatusOK, gin.H{"count": h.cart.Count(h.sessions.Cart(sid))})
}

// CheckoutPage shows the order form next to the materialized cart.
func (h *Handler) CheckoutPage(c *gin.Context) {
	sid := h.sessionID(c)
	lines, total := h.cart.Materialize(h.sessions.Cart(sid))
	if len(lines) == 0 {
		h.sessions.AddFlash(sid, session.FlashWarning, "Your cart is empty.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	c.HTML(http.StatusOK, "checkout.html", h.pageContext(c, sid, gin.H{
		"title":  "Checkout",
		"items":  lines,
		"total":  total,
		"form":   models.CheckoutForm{PaymentMethod: models.PaymentCashOnDelivery},
		"errors": map[string]string{},
	}))
}

// HandleCheckout validates the submitted contact fields and turns the cart
// into a persisted order. Validation failures re-render the form with the
// cart unchanged; an empty cart redirects back with a warning.
func (h *Handler) HandleCheckout(c *gin.Context) {
	sid := h.sessionID(c)
	cart := h.sessions.Cart(sid)

	var form models.CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		lines, total := h.cart.Materialize(cart)
		c.HTML(http.StatusBadRequest, "checkout.html", h.pageContext(c, sid, gin.H{
			"title":  "Checkout",
			"items":  lines,
			"total":  total,
			"form":   form,
			"errors": checkoutFormErrors(form),
		}))
		return
	}

	var userID *uint
	user := h.currentUser(c)
	if user != nil {
		userID = &user.ID
	}

	order, err := h.checkout.Checkout(cart, form, userID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			h.sessions.AddFlash(sid, session.FlashWarning, "Your cart is empty.")
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}
		log.Printf("HandleCheckout - order failed for session %s: %v", sid, err)
		h.sessions.AddFlash(sid, session.FlashError, "Your order could not be placed. Please try again.")
		c.Redirect(http.StatusSeeOther, "/checkout")
		return
	}

	h.sessions.SaveCart(sid, h.cart.Clear())
	log.Printf("HandleCheckout - order %s created, total %s", order.OrderNumber, order.TotalAmount.StringFixed(2))

	if user != nil {
		go func(email string, order *models.Order) {
			if err := h.email.SendOrderConfirmation(email, order); err != nil {
				log.Printf("HandleCheckout - confirmation email for %s: %v", order.OrderNumber, err)
			}
		}(user.Email, order)
	}

	c.Redirect(http.StatusSeeOther, "/order-success?order_number="+order.OrderNumber)
}

// OrderSuccessPage confirms a placed order.
func (h *Handler) OrderSuccessPage(c *gin.Context) {
	sid := h.sessionID(c)
	number := c.Query("order_number")
	if number == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	order, err := h.db.OrderByNumber(number)
	if err != nil {
		h.sessions.AddFlash(sid, session.FlashError, "Order not found.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "order_success.html", h.pageContext(c, sid, gin.H{
		"title": "Order Placed",
		"order": order,
	}))
}

func checkoutFormErrors(form models.CheckoutForm) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(form.CustomerName) == "" {
		errs["customer_name"] = "Please enter your full name."
	}
	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Please enter your phone number."
	}
	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "Please enter your delivery address."
	}
	if form.PaymentMethod != models.PaymentCashOnDelivery && form.PaymentMethod != models.PaymentBankTransfer {
		errs["payment_method"] = "Please choose a payment method."
	}
	return errs
}
