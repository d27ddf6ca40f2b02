package models

type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryBooks       Category = "BOOKS"
	CategoryFood        Category = "FOOD"
	CategoryOther       Category = "OTHER"
)

var Categories = []Category{CategoryElectronics, CategoryBooks, CategoryFood, CategoryOther}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Product as returned by the products service. Stock and Active are
// pointers because older records omit them.
type Product struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Amount   `json:"price"`
	Stock       *int     `json:"stock,omitempty"`
	Category    Category `json:"category,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// IsActive treats a missing flag as active.
func (p *Product) IsActive() bool {
	return p.Active == nil || *p.Active
}

// ProductRequest is the body for creating or updating a product. Price is
// kept as the operator typed it so its format can be validated.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Category    Category `json:"category"`
	Active      *bool    `json:"active,omitempty"`
}

// ProductPayload is what the products service receives.
type ProductPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Amount   `json:"price"`
	Stock       int      `json:"stock"`
	Category    Category `json:"category"`
	Active      bool     `json:"active"`
}
