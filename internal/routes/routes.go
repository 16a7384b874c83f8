package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijay0896/LoanApp/internal/handlers"
	"github.com/vijay0896/LoanApp/internal/middleware"
)

// Register wires the API surface. Loan routes keep the path casing the mobile
// client already depends on.
func Register(app *fiber.App, ah *handlers.AuthHandler, lh *handlers.LoanHandler, jwtSecret []byte, limiter *middleware.RateLimiter) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	api := app.Group("/api")
	authed := middleware.JWTAuth(jwtSecret)

	authGroup := api.Group("/auth")
	if limiter != nil {
		authGroup.Use(limiter.MiddlewareByKey(func(c *fiber.Ctx) string { return c.IP() }))
	}
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/user", authed, ah.CurrentUser)
	authGroup.Post("/reset-password", ah.ResetPassword)

	loan := api.Group("/loan", authed)
	loan.Post("/addEntry", lh.AddEntry)
	loan.Get("/getBorrowers", lh.GetBorrowers)
	loan.Delete("/deleteBorrower/:borrowerId", lh.DeleteBorrower)
	loan.Delete("/deleteBorrowerLoan/:borrowerId/loans/:loanId", lh.DeleteLoan)
	loan.Patch("/UpdateBorrower/:borrowerId", lh.UpdateBorrower)
	loan.Patch("/UpdateBorrowerLoan/:borrowerId/loans/:loanId", lh.UpdateLoan)
}
