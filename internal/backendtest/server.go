// Package backendtest provides an in-process stand-in for the hosted
// realtime-database backend and its identity provider. It mirrors the wire
// format the real services speak, so the client stack can be exercised
// end to end without network access.
package backendtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"kartshop/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type productData struct {
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type orderData struct {
	CartItems   []model.OrderLine `json:"cartItems"`
	TotalAmount float64           `json:"totalAmount"`
	Date        string            `json:"date"`
}

type productRecord struct {
	id   string
	data productData
}

type orderRecord struct {
	id   string
	data orderData
}

type userRecord struct {
	id           string
	passwordHash []byte
	disabled     bool
}

// Server is the fake backend. All state lives in memory; records keep
// insertion order, like the real backend's key order.
type Server struct {
	mu       sync.Mutex
	products []productRecord
	orders   map[string][]orderRecord
	users    map[string]*userRecord // keyed by email
	tokens   map[string]string      // token -> user ID
	httpSrv  *httptest.Server
}

// NewServer starts the fake backend on a local listener.
func NewServer() *Server {
	s := &Server{
		orders: make(map[string][]orderRecord),
		users:  make(map[string]*userRecord),
		tokens: make(map[string]string),
	}

	r := mux.NewRouter()
	r.HandleFunc("/products.json", s.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products.json", s.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}.json", s.patchProduct).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}.json", s.deleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{uid}.json", s.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{uid}.json", s.createOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{uid}/{orderId}.json", s.deleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/v1/accounts:signUp", s.signUp).Methods(http.MethodPost)
	r.HandleFunc("/v1/accounts:signInWithPassword", s.signIn).Methods(http.MethodPost)

	s.httpSrv = httptest.NewServer(r)
	return s
}

// URL returns the base URL of the fake backend.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Close shuts the fake backend down.
func (s *Server) Close() {
	s.httpSrv.Close()
}

// SeedProduct stores a product directly, bypassing the HTTP surface.
func (s *Server) SeedProduct(ownerID, title, imageURL, description string, price float64) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := productRecord{
		id: uuid.NewString(),
		data: productData{
			OwnerID:     ownerID,
			Title:       title,
			ImageURL:    imageURL,
			Description: description,
			Price:       price,
		},
	}
	s.products = append(s.products, rec)

	return model.Product{
		ID:          rec.id,
		OwnerID:     ownerID,
		Title:       title,
		ImageURL:    imageURL,
		Description: description,
		Price:       price,
	}
}

// authorized reports whether the request carries a known auth token, and
// the user it belongs to.
func (s *Server) authorized(r *http.Request) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[r.URL.Query().Get("auth")]
	return userID, ok
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	keys := make([]string, len(s.products))
	values := make([]any, len(s.products))
	for i, rec := range s.products {
		keys[i] = rec.id
		values[i] = rec.data
	}
	s.mu.Unlock()

	writeKeyed(w, keys, values)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeDenied(w)
		return
	}

	var data productData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rec := productRecord{id: uuid.NewString(), data: data}
	s.products = append(s.products, rec)
	s.mu.Unlock()

	writeJSON(w, map[string]string{"name": rec.id})
}

func (s *Server) patchProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeDenied(w)
		return
	}

	var patch struct {
		Title       string `json:"title"`
		ImageURL    string `json:"imageUrl"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].id == id {
			s.products[i].data.Title = patch.Title
			s.products[i].data.ImageURL = patch.ImageURL
			s.products[i].data.Description = patch.Description
			writeJSON(w, patch)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeDenied(w)
		return
	}

	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	// Deleting an absent record is not an error, like the real backend.
	kept := s.products[:0]
	for _, rec := range s.products {
		if rec.id != id {
			kept = append(kept, rec)
		}
	}
	s.products = kept
	writeJSON(w, nil)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	s.mu.Lock()
	records := s.orders[uid]
	keys := make([]string, len(records))
	values := make([]any, len(records))
	for i, rec := range records {
		keys[i] = rec.id
		values[i] = rec.data
	}
	s.mu.Unlock()

	writeKeyed(w, keys, values)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeDenied(w)
		return
	}

	var data orderData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	uid := mux.Vars(r)["uid"]

	s.mu.Lock()
	rec := orderRecord{id: uuid.NewString(), data: data}
	s.orders[uid] = append(s.orders[uid], rec)
	s.mu.Unlock()

	writeJSON(w, map[string]string{"name": rec.id})
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeDenied(w)
		return
	}

	vars := mux.Vars(r)
	uid, orderID := vars["uid"], vars["orderId"]

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[uid][:0]
	for _, rec := range s.orders[uid] {
		if rec.id != orderID {
			kept = append(kept, rec)
		}
	}
	s.orders[uid] = kept
	writeJSON(w, nil)
}

// writeKeyed writes a collection object preserving key order; an empty
// collection is JSON null, like the real backend.
func writeKeyed(w http.ResponseWriter, keys []string, values []any) {
	w.Header().Set("Content-Type", "application/json")

	if len(keys) == 0 {
		w.Write([]byte("null"))
		return
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(key)
		valueJSON, _ := json.Marshal(values[i])
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')

	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeDenied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Permission denied"}`))
}
