package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mernventory/inventory-api/internal/auth"
	"github.com/mernventory/inventory-api/internal/middleware"
	"github.com/mernventory/inventory-api/internal/repository"
)

// NewRouter wires every endpoint onto a chi router. Routes under the
// authenticator middleware require a valid session.
func NewRouter(
	userHandler *UserHandler,
	productHandler *ProductHandler,
	jwtAuth auth.JWTAuthenticator,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	authenticate := middleware.NewAuthenticator(jwtAuth, userRepo, logger)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Home page"))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/logout", userHandler.Logout)
		r.Get("/loggedin", userHandler.LoginStatus)
		r.Post("/forgotpassword", userHandler.ForgotPassword)
		r.Put("/resetpassword/{resetToken}", userHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/getuser", userHandler.GetUser)
			r.Patch("/updateuser", userHandler.UpdateProfile)
			r.Patch("/changepassword", userHandler.ChangePassword)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/", productHandler.ListProducts)
		r.Get("/stats/inventory", productHandler.GetInventoryStats)
		r.Get("/{id}", productHandler.GetProduct)
		r.Patch("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	return r
}
