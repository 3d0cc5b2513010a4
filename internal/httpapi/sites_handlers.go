package httpapi

import (
	"net/http"

	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/scrape"
)

type SitesHandler struct{}

func (SitesHandler) List(w http.ResponseWriter, r *http.Request) {
	var out []domain.Descriptor
	for _, s := range scrape.All(scrape.SearchConfig{}) {
		out = append(out, s.Descriptor())
	}
	writeJSON(w, out)
}
