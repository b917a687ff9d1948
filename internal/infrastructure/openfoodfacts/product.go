package openfoodfacts

import "strings"

// Product is the subset of an Open Food Facts product record the analysis
// pipeline consumes.  Nutriments stays a loose map because the upstream emits
// hundreds of keys with mixed numeric and string values; coercion into a
// typed profile happens in the nutrition domain package.
type Product struct {
	ProductName       string                 `json:"product_name"`
	Brands            string                 `json:"brands"`
	Categories        string                 `json:"categories"`
	Quantity          string                 `json:"quantity"`
	IngredientsText   string                 `json:"ingredients_text"`
	IngredientsTextEN string                 `json:"ingredients_text_en"`
	IngredientsTextFR string                 `json:"ingredients_text_fr"`
	ImageFrontURL     string                 `json:"image_front_url"`
	ImageURL          string                 `json:"image_url"`
	Nutriments        map[string]interface{} `json:"nutriments"`
}

// ResolveIngredientsText returns the first non-empty ingredients text,
// preferring the unqualified field over the language-tagged variants.
func (p *Product) ResolveIngredientsText() string {
	for _, s := range []string{p.IngredientsText, p.IngredientsTextEN, p.IngredientsTextFR} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// PrimaryBrand returns the first entry of the comma-separated brands field,
// trimmed.  Empty when the record carries no brand.
func (p *Product) PrimaryBrand() string {
	brand, _, _ := strings.Cut(p.Brands, ",")
	return strings.TrimSpace(brand)
}

// ResolveImageURL prefers the front-of-pack photo over the generic one.
func (p *Product) ResolveImageURL() string {
	if p.ImageFrontURL != "" {
		return p.ImageFrontURL
	}
	return p.ImageURL
}

// envelope is the wire shape of /api/v2/product/{barcode}.json.  Status 1
// means found; anything else is a normal not-found outcome.
type envelope struct {
	Status  int      `json:"status"`
	Product *Product `json:"product"`
}
