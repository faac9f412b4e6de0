package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/login", handler.Login)
	mux.HandleFunc("POST /api/register", handler.Register)
	mux.HandleFunc("POST /api/uploadWaiver", handler.UploadWaiver)
	mux.HandleFunc("POST /api/charge", handler.Charge)
	mux.HandleFunc("POST /api/contact", handler.SubmitContact)

	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/programs", handler.ListPrograms)
	mux.HandleFunc("GET /api/news", handler.ListNews)
	mux.HandleFunc("GET /api/media", handler.ListMedia)
	mux.HandleFunc("GET /api/merchandise", handler.ListMerch)

	mux.HandleFunc("POST /api/cards", handler.TokenizeCard)
	mux.HandleFunc("GET /api/cards", handler.ListSavedCards)
	mux.HandleFunc("DELETE /api/cards/{token}", handler.DeleteSavedCard)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("GET /api/registrations", admin(handler.ListRegistrations))
	mux.Handle("PUT /api/registrations/{id}", admin(handler.UpdateRegistration))
	mux.Handle("DELETE /api/registrations/{id}", admin(handler.DeleteRegistration))

	mux.Handle("GET /api/payments", admin(handler.ListPayments))

	mux.Handle("GET /api/contact", admin(handler.ListContactMessages))
	mux.Handle("PUT /api/contact/{id}/read", admin(handler.MarkContactMessageRead))
	mux.Handle("DELETE /api/contact/{id}", admin(handler.DeleteContactMessage))

	mux.Handle("POST /api/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /api/teams/{id}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /api/teams/{id}", admin(handler.DeleteTeam))

	mux.Handle("POST /api/programs", admin(handler.CreateProgram))
	mux.Handle("PUT /api/programs/{id}", admin(handler.UpdateProgram))
	mux.Handle("DELETE /api/programs/{id}", admin(handler.DeleteProgram))

	mux.Handle("POST /api/news", admin(handler.CreateNews))
	mux.Handle("DELETE /api/news/{id}", admin(handler.DeleteNews))
	mux.Handle("POST /api/media", admin(handler.CreateMedia))
	mux.Handle("DELETE /api/media/{id}", admin(handler.DeleteMedia))
	mux.Handle("POST /api/merchandise", admin(handler.CreateMerch))
	mux.Handle("DELETE /api/merchandise/{id}", admin(handler.DeleteMerch))
}
