package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth memvalidasi token Bearer HS256 lalu menyimpan claim ke Locals (sub, nama, role).
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		// Format header: "Bearer <token>", skema tidak peka huruf besar/kecil
		scheme, tokenString, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Format token harus Bearer"})
		}
		tokenString = strings.TrimSpace(tokenString)

		// 2. Parse dan Validasi Token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return key, nil
		}, jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		// 3. Simpan claim ke Context agar bisa dipakai di Handler
		claims := token.Claims.(jwt.MapClaims)
		c.Locals("sub", claims["sub"])
		c.Locals("nama", claims["nama"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}
