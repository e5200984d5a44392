package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"matchafinder/src/render"
	"matchafinder/src/types"
)

const (
	pageSize         = 10
	defaultRecommend = 3
)

type HandlePlaces struct {
	Name     string
	Total    int
	Places   []types.Place
	Page     int
	LastPage int
	PrevPage int
	NextPage int
}

type Recommendation struct {
	Name   string        `json:"name"`
	Places []types.Place `json:"places"`
}

func handleGetPlaces(w http.ResponseWriter, r *http.Request, client types.DataStore, indexName string) (*HandlePlaces, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		pageStr = "1"
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		http.Error(w, "Invalid page number", http.StatusBadRequest)
		return nil, fmt.Errorf("invalid page number: %q", pageStr)
	}

	places, total, err := client.GetPlaces(pageSize, (page-1)*pageSize)
	if err != nil {
		http.Error(w, "Error fetching places", http.StatusInternalServerError)
		return nil, err
	}

	lastPage := (total + pageSize - 1) / pageSize

	data := &HandlePlaces{
		Name:     indexName,
		Places:   places,
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	}

	if page > 1 {
		data.PrevPage = page - 1
	}

	if page < lastPage {
		data.NextPage = page + 1
	}

	return data, nil
}

func HandleGetPlacesHTML(w http.ResponseWriter, r *http.Request, client types.DataStore, tmpl *template.Template) {
	data, err := handleGetPlaces(w, r, client, "Matcha Places")
	if err != nil {
		return
	}

	if err = tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func HandleGetPlacesAPI(w http.ResponseWriter, r *http.Request, client types.DataStore) {
	data, err := handleGetPlaces(w, r, client, "Matcha Places")
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Error rendering JSON", http.StatusInternalServerError)
	}
}

// HandleHome runs the fetch -> parse -> render pipeline once against the
// dataset URL and serves the resulting card page.
func HandleHome(w http.ResponseWriter, r *http.Request, rend *render.Renderer, dataURL string) {
	var container bytes.Buffer
	state := rend.LoadAndRender(r.Context(), dataURL, &container)
	slog.Debug("home page rendered", "state", state.String())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rend.Page(w, template.HTML(container.String())); err != nil {
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

// HandleRecommendAPI serves the top-rated matcha places, ordered by rating
// and then review count.
func HandleRecommendAPI(w http.ResponseWriter, r *http.Request, client types.DataStore) {
	limit := defaultRecommend
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	places, err := client.GetTopRated(limit)
	if err != nil {
		http.Error(w, "Error fetching recommendations", http.StatusInternalServerError)
		return
	}

	response := Recommendation{
		Name:   "Recommendation",
		Places: places,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}

func LoadTemplate(filename string) (*template.Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return template.New("places").Funcs(template.FuncMap{
		"sub": func(a, b int) int { return a - b },
		"add": func(a, b int) int { return a + b },
		"div": func(a, b int) int { return a / b },
	}).Parse(string(data))
}
