package dto

import (
	"resort/internal/domains/packages/model"
	"resort/shared"
	gDto "resort/shared/dto"
	"resort/shared/imagestore"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePackageRequest struct {
	Title       string   `json:"title"       validate:"required,min=3,max=100"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Images      []string `json:"images"      validate:"omitempty,dive,required"`
}

func (c *CreatePackageRequest) ToModel(user string) model.Package {
	images := pq.StringArray{}
	if c.Images != nil {
		images = pq.StringArray(c.Images)
	}

	return model.Package{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Images:      images,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdatePackageRequest struct {
	Title       string         `db:"title"       json:"title"       validate:"omitempty,min=3,max=100"`
	Description string         `db:"description" json:"description" validate:"omitempty"`
	Price       *float64       `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Images      pq.StringArray `db:"images"      json:"images"      validate:"omitempty,dive,required" swaggertype:"array,string"`
}

func (u UpdatePackageRequest) IsEmpty() bool {
	return u.Title == "" && u.Description == "" && u.Price == nil && u.Images == nil
}

type PackageResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	ImageURLs   []string `json:"image_urls"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.Images = []string(model.Images)
	r.ImageURLs = make([]string, len(model.Images))

	for i, ref := range model.Images {
		r.ImageURLs[i] = imagestore.URL(ref)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, m := range models {
		r.Packages[i].FromModel(m)
	}
}

type UploadImageResponse struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

func (r *UploadImageResponse) FromRef(ref string) {
	r.Ref = ref
	r.URL = imagestore.URL(ref)
}

type DeleteImagesRequest struct {
	Refs []string `json:"refs" validate:"required,min=1,dive,required"`
}
