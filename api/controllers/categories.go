package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aquamart/aquamart-backend/api/responses"
	"github.com/aquamart/aquamart-backend/api/validators"
	"github.com/aquamart/aquamart-backend/internal/categories"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
	"github.com/aquamart/aquamart-backend/pkg/logger"
)

// CategoryTree serves the nested public category tree.
func CategoryTree(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := svc.Tree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

// AdminCategoryFlat serves the depth-annotated flat list used by admin pickers.
func AdminCategoryFlat(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flat, err := svc.Flat(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flat)
	}
}

type createCategoryRequest struct {
	NameAr    string  `json:"nameAr" validate:"required,min=2,max=255"`
	NameEn    *string `json:"nameEn" validate:"omitempty,max=255"`
	Slug      string  `json:"slug" validate:"required,min=2,max=255"`
	ParentID  *int64  `json:"parentId"`
	ImageURL  *string `json:"imageUrl" validate:"omitempty,url"`
	SortOrder int     `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

type updateCategoryRequest struct {
	NameAr    *string `json:"nameAr" validate:"omitempty,min=2,max=255"`
	NameEn    *string `json:"nameEn" validate:"omitempty,max=255"`
	Slug      *string `json:"slug" validate:"omitempty,min=2,max=255"`
	ParentID  *int64  `json:"parentId"`
	ImageURL  *string `json:"imageUrl" validate:"omitempty,url"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

func AdminCategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}

		category, err := svc.Create(r.Context(), categories.CreateCategoryInput{
			NameAr:    body.NameAr,
			NameEn:    body.NameEn,
			Slug:      body.Slug,
			ParentID:  body.ParentID,
			ImageURL:  body.ImageURL,
			SortOrder: body.SortOrder,
			IsActive:  isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminCategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseCategoryID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), categoryID, categories.UpdateCategoryInput{
			NameAr:    body.NameAr,
			NameEn:    body.NameEn,
			Slug:      body.Slug,
			ParentID:  body.ParentID,
			ImageURL:  body.ImageURL,
			SortOrder: body.SortOrder,
			IsActive:  body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

func AdminCategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseCategoryID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseCategoryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "categoryId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
	}
	return id, nil
}
