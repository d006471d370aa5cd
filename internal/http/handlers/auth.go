package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload tidak valid"})
		return
	}

	var (
		user         models.User
		passwordHash string
	)

	err := intconfig.DB.QueryRow(`
        SELECT id, name, username, email, phone, password_hash, role, status
        FROM users
        WHERE email = ? OR username = ?
    `, req.Email, req.Email).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Phone,
		&passwordHash,
		&user.Role,
		&user.Status,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email/username atau password salah"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query user: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email/username atau password salah"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "username, email dan password (min 6) wajib diisi", nil)
		return
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "staff"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal hash password", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status)
		VALUES (?,?,?,?,?,?,'active')`,
		req.Name, req.Username, req.Email, req.Phone, string(hash), role,
	)
	if err != nil {
		RespondError(c, http.StatusConflict, "gagal membuat user (username/email sudah dipakai?)", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"user": models.User{
			ID:       id,
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     role,
			Status:   "active",
		},
	})
}
