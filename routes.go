package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"stocktree/auth"
	"stocktree/automation"
	"stocktree/collection"
	"stocktree/company"
	"stocktree/manufacturerpart"
	"stocktree/model"
	"stocktree/order"
	"stocktree/part"
	"stocktree/supplierpart"
	"stocktree/user"
)

const (
	serverName = "stocktree"
	version    = "0.4.0"
	apiVersion = 1
)

// SetupRoutes wires every collection endpoint. Each resource follows the
// same contract: GET list (+export), OPTIONS metadata, POST create, DELETE
// bulk delete, and GET/PUT/DELETE on /{id}.
func SetupRoutes(r chi.Router, db *sqlx.DB, a *auth.Auth) {
	r.Get("/api/", func(w http.ResponseWriter, req *http.Request) {
		collection.WriteJSON(w, http.StatusOK, model.ServerInfo{
			Server:     serverName,
			Version:    version,
			APIVersion: apiVersion,
		})
	})
	r.Post("/api/login", auth.LoginHandler(db, a))

	r.Group(func(r chi.Router) {
		r.Use(a.Authenticator)

		r.Route("/api/part", func(r chi.Router) {
			r.Get("/", part.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(part.Fields()))
			r.Post("/", part.CreateHandler(db))
			r.Delete("/", part.BulkDeleteHandler(db))
			r.Get("/{id}", part.DetailHandler(db))
			r.Put("/{id}", part.UpdateHandler(db))
			r.Delete("/{id}", part.DeleteHandler(db))
		})

		r.Route("/api/company", func(r chi.Router) {
			r.Get("/", company.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(company.Fields()))
			r.Post("/", company.CreateHandler(db))
			r.Delete("/", company.BulkDeleteHandler(db))
			r.Get("/{id}", company.DetailHandler(db))
			r.Put("/{id}", company.UpdateHandler(db))
			r.Delete("/{id}", company.DeleteHandler(db))
		})

		r.Route("/api/supplier-part", func(r chi.Router) {
			r.Get("/", supplierpart.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(supplierpart.Fields()))
			r.Post("/", supplierpart.CreateHandler(db))
			r.Delete("/", supplierpart.BulkDeleteHandler(db))
			r.Get("/{id}", supplierpart.DetailHandler(db))
			r.Put("/{id}", supplierpart.UpdateHandler(db))
			r.Delete("/{id}", supplierpart.DeleteHandler(db))
		})

		r.Route("/api/manufacturer-part", func(r chi.Router) {
			r.Get("/", manufacturerpart.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(manufacturerpart.Fields()))
			r.Post("/", manufacturerpart.CreateHandler(db))
			r.Delete("/", manufacturerpart.BulkDeleteHandler(db))
			r.Get("/{id}", manufacturerpart.DetailHandler(db))
			r.Put("/{id}", manufacturerpart.UpdateHandler(db))
			r.Delete("/{id}", manufacturerpart.DeleteHandler(db))
		})

		r.Route("/api/order/po", func(r chi.Router) {
			r.Get("/", order.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(order.Fields()))
			r.Post("/", order.CreateHandler(db))
			r.Delete("/", order.BulkDeleteHandler(db))
			r.Get("/{id}", order.DetailHandler(db))
			r.Post("/{id}/issue", order.StatusHandler(db, model.OrderStatusPlaced))
			r.Post("/{id}/complete", order.StatusHandler(db, model.OrderStatusComplete))
			r.Post("/{id}/cancel", order.StatusHandler(db, model.OrderStatusCancelled))
		})

		r.Route("/api/order/po-line", func(r chi.Router) {
			r.Get("/", order.ListLinesHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(order.LineFields()))
			r.Post("/", order.CreateLineHandler(db))
			r.Delete("/", order.BulkDeleteLinesHandler(db))
			r.Put("/{id}", order.UpdateLineHandler(db))
			r.Post("/{id}/receive", order.ReceiveLineHandler(db))
		})

		r.Route("/api/user", func(r chi.Router) {
			r.Get("/", user.ListHandler(db))
			r.Method(http.MethodOptions, "/", collection.OptionsHandler(user.Fields()))
			r.Post("/", user.CreateHandler(db))
			r.Delete("/", user.BulkDeleteHandler(db))
			r.Get("/{id}", user.DetailHandler(db))
			r.Put("/{id}", user.UpdateHandler(db))
		})

		r.Get("/api/config", GetConfigHandler())
		r.Put("/api/config", SaveConfigHandler())
		r.Post("/api/pricelist/download", automation.DownloadPriceListHandler(db))
	})
}
