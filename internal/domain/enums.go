package domain

// Variant selects which of the two historical gateway behaviours is served
type Variant string

const (
	// VariantStrict: /api-prefixed collection and price rule routes, regex email
	// check, explicit marketing consent, 200 with the full upstream body
	VariantStrict Variant = "strict"
	// VariantLenient: unprefixed routes plus /api/save-email, presence-only email
	// check, 201 with the created customer
	VariantLenient Variant = "lenient"
)

// IsValid checks if the variant is known
func (v Variant) IsValid() bool {
	switch v {
	case VariantStrict, VariantLenient:
		return true
	default:
		return false
	}
}

// ProductIDSource selects which identifier a product summary carries
type ProductIDSource string

const (
	ProductIDFromProduct ProductIDSource = "product"
	// ProductIDFromOption reproduces the lenient server, which reported the id of
	// the product's first option instead of the product id
	ProductIDFromOption ProductIDSource = "option"
)

// IsValid checks if the id source is known
func (s ProductIDSource) IsValid() bool {
	return s == ProductIDFromProduct || s == ProductIDFromOption
}

// DefaultProductIDSource returns the id source each variant historically used
func (v Variant) DefaultProductIDSource() ProductIDSource {
	if v == VariantLenient {
		return ProductIDFromOption
	}
	return ProductIDFromProduct
}
