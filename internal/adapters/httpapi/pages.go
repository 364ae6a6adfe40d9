package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var pageTemplates = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{
			"displayDate": displayDate,
			"orDash":      orDash,
		}).
		ParseFS(templateFiles, "templates/*.html"),
)

// Cabinet tabs.
const (
	tabTrips    = "trips"
	tabContacts = "contacts"
)

type pageData struct {
	View        domain.View
	Tab         string
	Form        domain.TripForm
	HasSearched bool
	Companions  []domain.TripRecord
	Trips       []domain.TripRecord
}

type pageHandlers struct {
	log zerolog.Logger
}

// index renders whichever screen the session is on.
func (h pageHandlers) index(w http.ResponseWriter, r *http.Request, s *session.Session) {
	st, err := s.Snapshot(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	tab := r.URL.Query().Get("tab")
	if tab != tabContacts {
		tab = tabTrips
	}
	data := pageData{
		View:        st.View,
		Tab:         tab,
		Form:        st.Form,
		HasSearched: st.HasSearched,
		Companions:  st.Companions,
		Trips:       st.Trips,
	}

	// Render into a buffer so a template error never leaves half a page.
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h pageHandlers) navigate(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := s.Navigate(domain.View(r.PostFormValue("view"))); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	target := "/"
	if tab := r.PostFormValue("tab"); tab == tabContacts || tab == tabTrips {
		target = "/?tab=" + tab
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// search submits the posted form and shows the results on the search screen.
func (h pageHandlers) search(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	res, err := s.SubmitForm(r.Context(), tripFormFromRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Debug().
		Str("session", string(s.ID())).
		Str("trip", string(res.Trip.ID)).
		Int("companions", len(res.Companions)).
		Msg("trip submitted")

	if err := s.Navigate(domain.ViewSearch); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h pageHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("page failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// displayDate renders an ISO date (2024-06-01) as 01.06.2024. Anything that
// is not an ISO date is shown as typed.
func displayDate(s string) string {
	var d openapi_types.Date
	if err := d.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return s
	}
	return d.Format("02.01.2006")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
