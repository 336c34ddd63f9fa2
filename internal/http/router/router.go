package router

import (
	"database/sql"
	"net/http"

	"siakad/internal/blob"
	"siakad/internal/config"
	"siakad/internal/http/handlers"
	"siakad/internal/http/middleware"
	"siakad/internal/repo"
	"siakad/internal/service"
	"siakad/internal/util"
)

func New(cfg *config.Config, db *sql.DB) (http.Handler, error) {
	photos, err := blob.NewFSStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	signer := util.NewTokenSigner(cfg.JWTSecret, cfg.JWTTTL())

	authSvc := service.NewAuthService(repo.NewUserRepo(db), signer, cfg.AllowRoleElevation)
	prodiSvc := service.NewProdiService(repo.NewProdiRepo(db))
	mhsSvc := service.NewMahasiswaService(repo.NewMahasiswaRepo(db), repo.NewProdiRepo(db))

	ah := &handlers.AuthHandler{Auth: authSvc}
	uh := &handlers.UserHandler{Auth: authSvc}
	ph := &handlers.ProdiHandler{Prodi: prodiSvc}
	mh := &handlers.MahasiswaHandler{Mahasiswa: mhsSvc, Photos: photos}

	auth := middleware.RequireAuth(signer)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", ah.Register)
	mux.HandleFunc("POST /auth/login", ah.Login)
	mux.Handle("GET /users/profile", auth(http.HandlerFunc(uh.Profile)))

	mux.Handle("POST /prodi", auth(http.HandlerFunc(ph.Create)))
	mux.HandleFunc("GET /prodi", ph.List)
	mux.HandleFunc("GET /prodi/{id}", ph.Get)
	mux.Handle("PUT /prodi/{id}", auth(http.HandlerFunc(ph.Update)))
	mux.Handle("DELETE /prodi/{id}", auth(http.HandlerFunc(ph.Delete)))

	mux.Handle("POST /mahasiswa", auth(http.HandlerFunc(mh.Create)))
	mux.HandleFunc("GET /mahasiswa", mh.List)
	mux.HandleFunc("GET /mahasiswa/{id}", mh.Get)
	mux.Handle("PUT /mahasiswa/{id}", auth(http.HandlerFunc(mh.Update)))
	mux.Handle("DELETE /mahasiswa/{id}", auth(http.HandlerFunc(mh.Delete)))
	mux.Handle("PUT /mahasiswa/{id}/foto", auth(http.HandlerFunc(mh.UpdateFoto)))

	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	return middleware.Logging(mux), nil
}
