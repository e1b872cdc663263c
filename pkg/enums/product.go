package enums

import "fmt"

// ProductCategory represents the canonical product categories in the catalog.
type ProductCategory string

const (
	ProductCategoryVegetables ProductCategory = "vegetables"
	ProductCategoryFruits     ProductCategory = "fruits"
	ProductCategoryHerbs      ProductCategory = "herbs"
	ProductCategoryDairy      ProductCategory = "dairy"
	ProductCategoryMeat       ProductCategory = "meat"
	ProductCategoryPoultry    ProductCategory = "poultry"
	ProductCategorySeafood    ProductCategory = "seafood"
	ProductCategoryEggs       ProductCategory = "eggs"
	ProductCategoryGrains     ProductCategory = "grains"
	ProductCategoryBakedGoods ProductCategory = "baked_goods"
	ProductCategoryPreserves  ProductCategory = "preserves"
	ProductCategoryHoney      ProductCategory = "honey"
	ProductCategoryFlowers    ProductCategory = "flowers"
	ProductCategoryOther      ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryVegetables,
	ProductCategoryFruits,
	ProductCategoryHerbs,
	ProductCategoryDairy,
	ProductCategoryMeat,
	ProductCategoryPoultry,
	ProductCategorySeafood,
	ProductCategoryEggs,
	ProductCategoryGrains,
	ProductCategoryBakedGoods,
	ProductCategoryPreserves,
	ProductCategoryHoney,
	ProductCategoryFlowers,
	ProductCategoryOther,
}

// ProductCategories returns every known category.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductStatus captures the listing lifecycle.
type ProductStatus string

const (
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusActive       ProductStatus = "active"
	ProductStatusOutOfStock   ProductStatus = "out_of_stock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
	ProductStatusSeasonal     ProductStatus = "seasonal"
)

var validProductStatuses = []ProductStatus{
	ProductStatusDraft,
	ProductStatusActive,
	ProductStatusOutOfStock,
	ProductStatusDiscontinued,
	ProductStatusSeasonal,
}

// ProductStatuses returns every known status.
func ProductStatuses() []ProductStatus {
	out := make([]ProductStatus, len(validProductStatuses))
	copy(out, validProductStatuses)
	return out
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// ProductCondition describes the physical state of the goods.
type ProductCondition string

const (
	ProductConditionFresh      ProductCondition = "fresh"
	ProductConditionExcellent  ProductCondition = "excellent"
	ProductConditionGood       ProductCondition = "good"
	ProductConditionImperfect  ProductCondition = "imperfect"
	ProductConditionNearExpiry ProductCondition = "near_expiry"
)

var validProductConditions = []ProductCondition{
	ProductConditionFresh,
	ProductConditionExcellent,
	ProductConditionGood,
	ProductConditionImperfect,
	ProductConditionNearExpiry,
}

// ProductConditions returns every known condition.
func ProductConditions() []ProductCondition {
	out := make([]ProductCondition, len(validProductConditions))
	copy(out, validProductConditions)
	return out
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCondition.
func (c ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}

// ProductOrigin classifies how far goods traveled to reach the buyer region.
type ProductOrigin string

const (
	ProductOriginLocal    ProductOrigin = "local"
	ProductOriginRegional ProductOrigin = "regional"
	ProductOriginNational ProductOrigin = "national"
	ProductOriginImported ProductOrigin = "imported"
)

var validProductOrigins = []ProductOrigin{
	ProductOriginLocal,
	ProductOriginRegional,
	ProductOriginNational,
	ProductOriginImported,
}

// ProductOrigins returns every known origin.
func ProductOrigins() []ProductOrigin {
	out := make([]ProductOrigin, len(validProductOrigins))
	copy(out, validProductOrigins)
	return out
}

// String implements fmt.Stringer.
func (o ProductOrigin) String() string {
	return string(o)
}

// IsValid reports whether the value is a known ProductOrigin.
func (o ProductOrigin) IsValid() bool {
	for _, candidate := range validProductOrigins {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseProductOrigin converts raw input into a ProductOrigin.
func ParseProductOrigin(value string) (ProductOrigin, error) {
	for _, candidate := range validProductOrigins {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product origin %q", value)
}

// CertificationType enumerates the certifications a product can carry.
type CertificationType string

const (
	CertificationOrganic       CertificationType = "organic"
	CertificationNonGMO        CertificationType = "non_gmo"
	CertificationPesticideFree CertificationType = "pesticide_free"
	CertificationGrassFed      CertificationType = "grass_fed"
	CertificationFreeRange     CertificationType = "free_range"
	CertificationHalal         CertificationType = "halal"
	CertificationKosher        CertificationType = "kosher"
	CertificationLocallyGrown  CertificationType = "locally_grown"
	CertificationFairTrade     CertificationType = "fair_trade"
	CertificationGlutenFree    CertificationType = "gluten_free"
	CertificationVegan         CertificationType = "vegan"
	CertificationHeirloom      CertificationType = "heirloom"
)

var validCertificationTypes = []CertificationType{
	CertificationOrganic,
	CertificationNonGMO,
	CertificationPesticideFree,
	CertificationGrassFed,
	CertificationFreeRange,
	CertificationHalal,
	CertificationKosher,
	CertificationLocallyGrown,
	CertificationFairTrade,
	CertificationGlutenFree,
	CertificationVegan,
	CertificationHeirloom,
}

// String implements fmt.Stringer.
func (c CertificationType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CertificationType.
func (c CertificationType) IsValid() bool {
	for _, candidate := range validCertificationTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCertificationType converts raw input into a CertificationType.
func ParseCertificationType(value string) (CertificationType, error) {
	for _, candidate := range validCertificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid certification type %q", value)
}
