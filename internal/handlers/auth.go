package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"flashmart/internal/database"
	"flashmart/internal/models"
	"flashmart/internal/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	sid := h.sessionID(c)
	c.HTML(http.StatusOK, "login.html", h.pageContext(c, sid, gin.H{
		"title": "Sign In",
	}))
}

// HandleLogin checks the credentials and starts a fresh session, carrying
// the visitor's cart over to the new session id.
func (h *Handler) HandleLogin(c *gin.Context) {
	sid := h.sessionID(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.db.UserByUsername(username)
	if err != nil || !CheckPasswordHash(password, user.PasswordHash) {
		h.security.LogAuthEvent("LOGIN_FAILED", username, c.ClientIP())
		c.HTML(http.StatusUnauthorized, "login.html", h.pageContext(c, sid, gin.H{
			"title": "Sign In",
			"error": "Incorrect username or password.",
		}))
		return
	}

	newSID := uuid.New().String()
	c.SetCookie(sessionCookie, newSID, 3600*24*30, "/", "", false, true)
	c.SetCookie("username", user.Username, 3600*24*30, "/", "", false, true)

	// Keep whatever the visitor put in the cart before signing in.
	h.sessions.SaveCart(newSID, h.sessions.Cart(sid))

	h.security.LogAuthEvent("LOGIN_OK", user.Username, c.ClientIP())
	h.sessions.AddFlash(newSID, session.FlashSuccess, "Welcome back, "+user.Username+"!")
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	sid := h.sessionID(c)
	c.HTML(http.StatusOK, "register.html", h.pageContext(c, sid, gin.H{
		"title": "Create Account",
	}))
}

// HandleRegister creates the account and signs the user in right away.
func (h *Handler) HandleRegister(c *gin.Context) {
	sid := h.sessionID(c)
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirmPassword")

	renderError := func(msg string) {
		c.HTML(http.StatusBadRequest, "register.html", h.pageContext(c, sid, gin.H{
			"title":        "Create Account",
			"error":        msg,
			"formUsername": username,
			"formEmail":    email,
		}))
	}

	if username == "" || email == "" || password == "" {
		renderError("Please fill in all fields.")
		return
	}
	if password != confirmPassword {
		renderError("Passwords do not match.")
		return
	}
	if !emailPattern.MatchString(email) {
		renderError("Please enter a valid email address.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("HandleRegister - hashing failed: %v", err)
		renderError("Registration failed. Please try again.")
		return
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := h.db.CreateUser(user); err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			renderError("That username or email is already taken.")
			return
		}
		log.Printf("HandleRegister - create user failed: %v", err)
		renderError("Registration failed. Please try again.")
		return
	}

	h.security.LogAuthEvent("REGISTER", user.Username, c.ClientIP())

	// Sign the new account in immediately, keeping the guest cart.
	newSID := uuid.New().String()
	c.SetCookie(sessionCookie, newSID, 3600*24*30, "/", "", false, true)
	c.SetCookie("username", user.Username, 3600*24*30, "/", "", false, true)
	h.sessions.SaveCart(newSID, h.sessions.Cart(sid))

	h.sessions.AddFlash(newSID, session.FlashSuccess, "Registration successful!")
	c.Redirect(http.StatusSeeOther, "/")
}

// UserLogout clears the auth cookies.
func (h *Handler) UserLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.SetCookie("username", "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// CheckPasswordHash compares a plaintext password with its bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
