package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siakad/internal/apperrors"
	"siakad/internal/models"
	"siakad/internal/repo"
	"siakad/internal/service"
)

type memUow struct{ s *memStore }

func (u *memUow) InsertMahasiswa(_ context.Context, m *models.Mahasiswa) error {
	u.s.nextID++
	m.ID = u.s.nextID
	cp := *m
	u.s.students[m.ID] = &cp
	return nil
}

func (u *memUow) UpdateMahasiswa(_ context.Context, m *models.Mahasiswa) error {
	// Mirror the SQL UPDATE: only scalar columns persist; relations are
	// reattached by GetByID.
	cp := *m
	cp.Alamat = nil
	cp.Prodi = nil
	u.s.students[m.ID] = &cp
	return nil
}

func (u *memUow) DeleteMahasiswa(_ context.Context, id int64) (int64, error) {
	if _, ok := u.s.students[id]; !ok {
		return 0, nil
	}
	delete(u.s.students, id)
	return 1, nil
}

func (u *memUow) InsertAlamat(_ context.Context, mahasiswaID int64, a *models.Alamat) error {
	u.s.nextID++
	a.ID = u.s.nextID
	cp := *a
	u.s.alamat[mahasiswaID] = &cp
	return nil
}

func (u *memUow) UpdateAlamat(_ context.Context, a *models.Alamat) error {
	for sid, cur := range u.s.alamat {
		if cur.ID == a.ID {
			cp := *a
			u.s.alamat[sid] = &cp
		}
	}
	return nil
}

func (u *memUow) DeleteAlamat(_ context.Context, mahasiswaID int64) error {
	delete(u.s.alamat, mahasiswaID)
	return nil
}

func (u *memUow) Commit() error   { return nil }
func (u *memUow) Rollback() error { return nil }

type memStore struct {
	students map[int64]*models.Mahasiswa
	alamat   map[int64]*models.Alamat
	nextID   int64

	listData   []models.Mahasiswa
	listCount  int64
	lastFilter repo.ListFilter
}

func newMemStore() *memStore {
	return &memStore{students: map[int64]*models.Mahasiswa{}, alamat: map[int64]*models.Alamat{}}
}

func (s *memStore) BeginTx(context.Context) (repo.UnitOfWork, error) {
	return &memUow{s: s}, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*models.Mahasiswa, error) {
	m, ok := s.students[id]
	if !ok {
		return nil, apperrors.NotFound("mahasiswa with id %d not found", id)
	}
	cp := *m
	if a, ok := s.alamat[id]; ok {
		ac := *a
		cp.Alamat = &ac
	}
	return &cp, nil
}

func (s *memStore) NIMTaken(_ context.Context, nim string, excludeID int64) (bool, error) {
	for id, m := range s.students {
		if m.NIM == nim && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpdateFoto(_ context.Context, id int64, foto *string) error {
	m, ok := s.students[id]
	if !ok {
		return apperrors.NotFound("mahasiswa with id %d not found", id)
	}
	m.Foto = foto
	return nil
}

func (s *memStore) List(_ context.Context, f repo.ListFilter) ([]models.Mahasiswa, int64, error) {
	s.lastFilter = f
	return s.listData, s.listCount, nil
}

type memProdiStore struct{ prodi map[int64]*models.Prodi }

func (s *memProdiStore) Create(_ context.Context, p *models.Prodi) error { return nil }
func (s *memProdiStore) GetAll(context.Context) ([]models.Prodi, error) { return nil, nil }
func (s *memProdiStore) GetByID(_ context.Context, id int64) (*models.Prodi, error) {
	p, ok := s.prodi[id]
	if !ok {
		return nil, apperrors.NotFound("prodi with id %d not found", id)
	}
	cp := *p
	return &cp, nil
}
func (s *memProdiStore) Update(_ context.Context, p *models.Prodi) error { return nil }
func (s *memProdiStore) Delete(_ context.Context, id int64) error        { return nil }
func (s *memProdiStore) CountMahasiswa(_ context.Context, id int64) (int64, error) {
	return 0, nil
}

type memBlobStore struct{ deleted []string }

func (b *memBlobStore) Save(_ context.Context, data []byte) (string, error) {
	return "http://localhost:8080/uploads/new.jpg", nil
}

func (b *memBlobStore) Delete(_ context.Context, url string) error {
	b.deleted = append(b.deleted, url)
	return nil
}

func newMahasiswaMux() (*http.ServeMux, *memStore, *memBlobStore) {
	store := newMemStore()
	prodi := &memProdiStore{prodi: map[int64]*models.Prodi{
		1: {ID: 1, Nama: "Teknik Informatika"},
	}}
	blobs := &memBlobStore{}
	h := &MahasiswaHandler{
		Mahasiswa: service.NewMahasiswaService(store, prodi),
		Photos:    blobs,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /mahasiswa", h.Create)
	mux.HandleFunc("GET /mahasiswa", h.List)
	mux.HandleFunc("GET /mahasiswa/{id}", h.Get)
	mux.HandleFunc("PUT /mahasiswa/{id}", h.Update)
	mux.HandleFunc("DELETE /mahasiswa/{id}", h.Delete)
	return mux, store, blobs
}

func TestMahasiswaCreateHandler(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	body := `{"nim":"2101001","nama":"budi santoso","prodi_id":1,"alamat":{"jalan":"Jl. Melati 5","kota":"Bandung","kode_pos":"40115"}}`
	req := httptest.NewRequest(http.MethodPost, "/mahasiswa", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var m models.Mahasiswa
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "2101001", m.NIM)
	assert.Equal(t, "Budi Santoso", m.Nama)
	require.NotNil(t, m.Alamat)
	assert.Equal(t, "40115", m.Alamat.KodePos)
}

func TestMahasiswaCreateHandler_MissingFields(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	req := httptest.NewRequest(http.MethodPost, "/mahasiswa", strings.NewReader(`{"nama":"Budi"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMahasiswaCreateHandler_BadJSON(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	req := httptest.NewRequest(http.MethodPost, "/mahasiswa", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMahasiswaListHandler_ParsesQuery(t *testing.T) {
	mux, store, _ := newMahasiswaMux()
	store.listData = []models.Mahasiswa{{ID: 1, NIM: "2101001", Nama: "Ali"}}
	store.listCount = 12

	req := httptest.NewRequest(http.MethodGet,
		"/mahasiswa?search=ali&prodi_id=3&page=2&limit=5&sortBy=nim&sortOrder=desc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page service.MahasiswaPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(12), page.Count)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)

	assert.Equal(t, "ali", store.lastFilter.Search)
	require.NotNil(t, store.lastFilter.ProdiID)
	assert.Equal(t, int64(3), *store.lastFilter.ProdiID)
	assert.Equal(t, "nim", store.lastFilter.SortBy)
	assert.Equal(t, "DESC", store.lastFilter.SortOrder)
	assert.Equal(t, 5, store.lastFilter.Limit)
}

func TestMahasiswaListHandler_BadProdiID(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	req := httptest.NewRequest(http.MethodGet, "/mahasiswa?prodi_id=abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMahasiswaGetHandler_NotFound(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	req := httptest.NewRequest(http.MethodGet, "/mahasiswa/99", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
}

func TestMahasiswaGetHandler_BadID(t *testing.T) {
	mux, _, _ := newMahasiswaMux()

	req := httptest.NewRequest(http.MethodGet, "/mahasiswa/abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMahasiswaDeleteHandler_CleansUpBlob(t *testing.T) {
	mux, store, blobs := newMahasiswaMux()
	foto := "http://localhost:8080/uploads/old.jpg"
	store.nextID = 1
	store.students[1] = &models.Mahasiswa{ID: 1, NIM: "2101001", Nama: "Budi", Foto: &foto}

	req := httptest.NewRequest(http.MethodDelete, "/mahasiswa/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.students)
	assert.Equal(t, []string{foto}, blobs.deleted)
}

func TestMahasiswaUpdateHandler_TriStateBody(t *testing.T) {
	mux, store, _ := newMahasiswaMux()
	prodiID := int64(1)
	store.nextID = 1
	store.students[1] = &models.Mahasiswa{ID: 1, NIM: "2101001", Nama: "Budi", ProdiID: &prodiID}
	store.alamat[1] = &models.Alamat{ID: 9, Jalan: "Jl. Melati 5", Kota: "Bandung"}

	// explicit nulls detach the prodi and delete the alamat
	body := `{"prodi_id":null,"alamat":null}`
	req := httptest.NewRequest(http.MethodPut, "/mahasiswa/1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var m models.Mahasiswa
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Nil(t, m.ProdiID)
	assert.Nil(t, m.Alamat)
	assert.Equal(t, "2101001", m.NIM, "absent fields stay untouched")
	assert.Empty(t, store.alamat)
}
