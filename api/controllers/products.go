package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/api/responses"
	"github.com/Sathishnaik786/Zekto/api/validators"
	productsvc "github.com/Sathishnaik786/Zekto/internal/products"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/logger"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

// BrowseProducts lists products for the public catalog, filterable by
// store, category and stock.
func BrowseProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		params := pagination.FromQuery(r.URL.Query(), pagination.BrowseLimit)
		filters := productsvc.Filters{
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 100),
			Query:    validators.SanitizeString(r.URL.Query().Get("q"), 100),
		}
		if raw := r.URL.Query().Get("storeId"); raw != "" {
			storeID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid storeId"))
				return
			}
			filters.StoreID = &storeID
		}
		if raw := r.URL.Query().Get("inStock"); raw != "" {
			inStock, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inStock"))
				return
			}
			filters.OnlyInStock = inStock
		}
		if raw := r.URL.Query().Get("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid featured"))
				return
			}
			filters.Featured = &featured
		}

		page, err := svc.Browse(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetProduct returns one product's public detail, including computed
// discountedPrice.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
