package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jauntkid/TailorPro/controllers"
	"github.com/jauntkid/TailorPro/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "success",
			"message":   "API is up and running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public auth endpoints
	users := api.Group("/users")
	users.Post("/register", controllers.RegisterUser)
	users.Post("/login", controllers.LoginUser)
	users.Post("/refresh-token", controllers.RefreshToken)

	// Protected user endpoints (JWT auth)
	users.Post("/logout", middlewares.Protect(), controllers.LogoutUser)
	users.Get("/profile", middlewares.Protect(), controllers.GetUserProfile)
	users.Put("/profile", middlewares.Protect(), controllers.UpdateUserProfile)
	users.Put("/password", middlewares.Protect(), controllers.UpdatePassword)

	// Admin user management
	users.Get("/", middlewares.Protect(), middlewares.AdminOnly(), controllers.GetUsers)
	users.Get("/:id", middlewares.Protect(), middlewares.AdminOnly(), controllers.GetUserByID)
	users.Put("/:id", middlewares.Protect(), middlewares.AdminOnly(), controllers.UpdateUser)
	users.Delete("/:id", middlewares.Protect(), middlewares.AdminOnly(), controllers.DeleteUser)

	// Everything below requires a valid token.
	protected := api.Group("", middlewares.Protect())

	// Customers
	customers := protected.Group("/customers")
	customers.Get("/", controllers.GetCustomers)
	customers.Post("/", controllers.CreateCustomer)
	customers.Get("/:id", controllers.GetCustomer)
	customers.Put("/:id", controllers.UpdateCustomer)
	customers.Delete("/:id", controllers.DeleteCustomer)
	customers.Get("/:id/orders", controllers.GetCustomerOrders)
	customers.Get("/:id/measurements", controllers.GetCustomerMeasurements)

	// Categories
	categories := protected.Group("/categories")
	categories.Get("/", controllers.GetCategories)
	categories.Post("/", middlewares.AdminOnly(), controllers.CreateCategory)
	categories.Get("/:id", controllers.GetCategory)
	categories.Put("/:id", middlewares.AdminOnly(), controllers.UpdateCategory)
	categories.Delete("/:id", middlewares.AdminOnly(), controllers.DeleteCategory)

	// Products
	products := protected.Group("/products")
	products.Get("/", controllers.GetProducts)
	products.Post("/", middlewares.AdminOnly(), controllers.CreateProduct)
	products.Get("/:id", controllers.GetProduct)
	products.Put("/:id", middlewares.AdminOnly(), controllers.UpdateProduct)
	products.Delete("/:id", middlewares.AdminOnly(), controllers.DeleteProduct)

	// Measurements
	measurements := protected.Group("/measurements")
	measurements.Get("/", controllers.GetMeasurements)
	measurements.Post("/", controllers.CreateMeasurement)
	measurements.Get("/:id", controllers.GetMeasurement)
	measurements.Put("/:id", controllers.UpdateMeasurement)
	measurements.Delete("/:id", controllers.DeleteMeasurement)

	// Orders
	orders := protected.Group("/orders")
	orders.Get("/", controllers.GetOrders)
	orders.Post("/", controllers.CreateOrder)
	orders.Get("/:id", controllers.GetOrder)
	orders.Put("/:id", controllers.UpdateOrder)
	orders.Put("/:id/status", controllers.UpdateOrderStatus)
	orders.Delete("/:id", middlewares.AdminOnly(), controllers.DeleteOrder)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.Get("/", controllers.GetInvoices)
	invoices.Post("/", controllers.CreateInvoice)
	invoices.Get("/:id", controllers.GetInvoice)
	invoices.Put("/:id", controllers.UpdateInvoice)
	invoices.Delete("/:id", middlewares.AdminOnly(), controllers.DeleteInvoice)
	invoices.Post("/:id/payments", controllers.AddPayment)
	invoices.Delete("/:id/payments/:paymentId", middlewares.AdminOnly(), controllers.RemovePayment)
}
