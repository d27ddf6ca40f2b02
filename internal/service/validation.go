package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// ValidateUserRequest checks a user form. Every failed field is reported.
func ValidateUserRequest(req *models.UserRequest) error {
	var errs errors.ValidationErrors

	if utf8.RuneCountInString(strings.TrimSpace(req.FirstName)) < 2 {
		errs = append(errs, errors.NewValidationError("firstName", "first name must be at least 2 characters"))
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.LastName)) < 2 {
		errs = append(errs, errors.NewValidationError("lastName", "last name must be at least 2 characters"))
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		errs = append(errs, errors.NewValidationError("email", "valid email required"))
	}

	return errs.OrNil()
}

// ValidateProductRequest checks a product form and builds the payload sent
// to the products service. Active defaults to true.
func ValidateProductRequest(req *models.ProductRequest) (*models.ProductPayload, error) {
	var errs errors.ValidationErrors

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 3 {
		errs = append(errs, errors.NewValidationError("name", "name must be at least 3 characters"))
	}

	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) < 10 {
		errs = append(errs, errors.NewValidationError("description", "description must be at least 10 characters"))
	}

	rawPrice := strings.TrimSpace(req.Price)
	price := models.ParseAmount(rawPrice)
	switch {
	case !pricePattern.MatchString(rawPrice):
		errs = append(errs, errors.NewValidationError("price", "price must be a number with at most two decimals"))
	case !price.Valid() || !price.Decimal().IsPositive():
		errs = append(errs, errors.NewValidationError("price", "price must be greater than zero"))
	}

	if req.Stock < 0 {
		errs = append(errs, errors.NewValidationError("stock", "stock cannot be negative"))
	}

	switch {
	case req.Category == "":
		errs = append(errs, errors.NewValidationError("category", "category is required"))
	case !req.Category.Valid():
		errs = append(errs, errors.NewValidationError("category", "invalid category"))
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &models.ProductPayload{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      active,
	}, nil
}
