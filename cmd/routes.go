package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.adminAuth)

	mux := pat.New()

	// Listings
	mux.Get("/api/listings/all", adminMiddleware.ThenFunc(app.listingHandler.GetAllListings))
	mux.Get("/api/listings", standardMiddleware.ThenFunc(app.listingHandler.GetListings))
	mux.Post("/api/listings", standardMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Put("/api/listings/:id", adminMiddleware.ThenFunc(app.listingHandler.ModerateListing))

	// Admin
	mux.Post("/api/admin/login", standardMiddleware.ThenFunc(app.adminHandler.Login))

	// Stats
	mux.Get("/api/stats", standardMiddleware.ThenFunc(app.adminHandler.GetStats))

	// Uploaded images
	mux.Get("/uploads/:filename", standardMiddleware.ThenFunc(app.listingHandler.ServeImage))

	return standardMiddleware.Then(mux)
}
