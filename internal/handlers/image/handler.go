package image

import (
	"net/http"
	"path"
	"resort/infras/otel"
	"resort/shared/constant"
	"resort/shared/imagestore"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	store imagestore.Store
	otel  otel.Otel
}

func New(store imagestore.Store, otel otel.Otel) Handler {
	return Handler{
		store: store,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/images/"+imagestore.DirectoryCheckIn+"/*", handler.GetCheckInImage)
	router.Get("/images/*", handler.GetImage)
}

// GetImage serves public room and package images.
// @Summary Get a stored image
// @Tags Image
// @Produce image/png
// @Produce image/jpeg
// @Param path path string true "Image reference, e.g. rooms/<uuid>.png"
// @Success 200 {file} binary
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{path} [get]
func (handler *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, ".GetImage", chi.URLParam(r, "*"))
}

// GetCheckInImage serves the ID card and guest photo taken at check-in.
// @Summary Get a check-in image
// @Tags Image
// @Produce image/png
// @Produce image/jpeg
// @Param path path string true "Image name, e.g. <uuid>.png"
// @Success 200 {file} binary
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/checkin/{path} [get]
// @Security BearerAuth
func (handler *Handler) GetCheckInImage(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, ".GetCheckInImage", path.Join(imagestore.DirectoryCheckIn, chi.URLParam(r, "*")))
}

func (handler *Handler) serve(w http.ResponseWriter, r *http.Request, name, ref string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+name)
	defer scope.End()

	img, err := handler.store.Get(ctx, ref)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("ref", ref).Msg("failed to get image")

		response.WithError(w, err)

		return
	}

	response.WithBytes(w, http.StatusOK, img.ContentType, img.Data)
}
