package admin

import (
	"context"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// resource binds one entity's listing, form and actions to the list/new/
// create/edit/update/delete routes under its list path.
type resource[I any, F ~string] struct {
	handlers

	titleKey string
	newKey   string
	editKey  string
	listPath string
	newPath  string
	itemPath func(id string) string

	fromForm func(url.Values) I
	list     func(context.Context, webtemplates.Page) (templ.Component, error)
	load     func(context.Context, string) (I, error)
	form     func(webtemplates.Page, webtemplates.FormView, I) templ.Component
	create   func(context.Context, I) domain.Result[F]
	update   func(context.Context, string, I) domain.Result[F]
	remove   func(context.Context, string) domain.Result[F]
}

func (res resource[I, F]) register(mux *http.ServeMux) {
	item := res.listPath + "/{id}"
	mux.HandleFunc(routepath.Pattern(http.MethodGet, res.listPath), res.handleList)
	mux.HandleFunc(routepath.Pattern(http.MethodPost, res.listPath), res.handleCreate)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, res.newPath), res.handleNew)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, item+routepath.AdminEditSuffix), res.handleEdit)
	mux.HandleFunc(routepath.Pattern(http.MethodPost, item), res.handleUpdate)
	mux.HandleFunc(routepath.Pattern(http.MethodPost, item+routepath.AdminDeleteSuffix), res.handleDelete)
}

func (res resource[I, F]) handleList(w http.ResponseWriter, r *http.Request) {
	page := res.page(w, r, res.titleKey)
	body, err := res.list(r.Context(), page)
	if err != nil {
		res.writeError(w, r, err)
		return
	}
	res.write(w, r, page, http.StatusOK, body)
}

func (res resource[I, F]) handleNew(w http.ResponseWriter, r *http.Request) {
	var blank I
	res.renderForm(w, r, http.StatusOK, res.newKey, webtemplates.FormView{Action: res.listPath}, blank)
}

func (res resource[I, F]) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r, res.fromForm)
	if err != nil {
		res.writeError(w, r, err)
		return
	}
	result := res.create(r.Context(), in)
	res.respond(w, r, result, http.StatusCreated, res.newKey, res.listPath, in)
}

func (res resource[I, F]) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, err := res.load(r.Context(), id)
	if err != nil {
		res.writeError(w, r, err)
		return
	}
	res.renderForm(w, r, http.StatusOK, res.editKey, webtemplates.FormView{Action: res.itemPath(id)}, in)
}

func (res resource[I, F]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, err := decodeInput(w, r, res.fromForm)
	if err != nil {
		res.writeError(w, r, err)
		return
	}
	result := res.update(r.Context(), id, in)
	res.respond(w, r, result, http.StatusOK, res.editKey, res.itemPath(id), in)
}

func (res resource[I, F]) handleDelete(w http.ResponseWriter, r *http.Request) {
	result := res.remove(r.Context(), r.PathValue("id"))
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSON(w, resultStatus(result, http.StatusOK), result)
		return
	}
	notice := flash.Success(result.Message)
	if !result.Success {
		notice = flash.Failure(result.Message)
	}
	flash.Write(w, r, notice, res.deps.SchemePolicy)
	httpx.SeeOther(w, r, res.link(r, res.listPath))
}

// respond answers a create or update. JSON clients get the result itself;
// browsers are redirected to the listing on success and shown the form with
// its field errors otherwise.
func (res resource[I, F]) respond(w http.ResponseWriter, r *http.Request, result domain.Result[F], success int, titleKey string, action string, in I) {
	status := resultStatus(result, success)
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSON(w, status, result)
		return
	}
	if result.Success {
		flash.Write(w, r, flash.Success(result.Message), res.deps.SchemePolicy)
		httpx.SeeOther(w, r, res.link(r, res.listPath))
		return
	}
	if actions.IsNotFound(result.Message) {
		res.writeError(w, r, apperrors.EK(apperrors.KindNotFound, result.Message, result.Message))
		return
	}
	res.renderForm(w, r, status, titleKey, webtemplates.FormView{
		Action:  action,
		Message: result.Message,
		Errors:  webtemplates.FieldErrors(result.Errors),
	}, in)
}

func (res resource[I, F]) renderForm(w http.ResponseWriter, r *http.Request, status int, titleKey string, view webtemplates.FormView, in I) {
	page := res.page(w, r, titleKey)
	res.write(w, r, page, status, res.form(page, view, in))
}
