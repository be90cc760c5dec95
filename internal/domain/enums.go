package domain

// AnnouncementStatus is the closed set of listing states. Any status may be
// set to any other by the owner; there is no transition graph.
type AnnouncementStatus string

const (
	StatusActive   AnnouncementStatus = "active"
	StatusReserved AnnouncementStatus = "reserved"
	StatusSold     AnnouncementStatus = "sold"
	StatusRemoved  AnnouncementStatus = "removed"
)

// BookCondition grades the physical state of the offered copy.
type BookCondition string

const (
	ConditionNew        BookCondition = "new"
	ConditionLikeNew    BookCondition = "like_new"
	ConditionGood       BookCondition = "good"
	ConditionAcceptable BookCondition = "acceptable"
	ConditionWorn       BookCondition = "worn"
)

// BookCategory is the fixed set of subject categories a seller files a
// listing under (distinct from the free-text Google Books categories string).
type BookCategory string

const (
	CategoryMathematics     BookCategory = "mathematics"
	CategoryComputerScience BookCategory = "computer_science"
	CategoryPhysics         BookCategory = "physics"
	CategoryChemistry       BookCategory = "chemistry"
	CategoryBiology         BookCategory = "biology"
	CategoryEngineering     BookCategory = "engineering"
	CategoryMedicine        BookCategory = "medicine"
	CategoryEconomics       BookCategory = "economics"
	CategoryLaw             BookCategory = "law"
	CategoryLiterature      BookCategory = "literature"
	CategoryLanguages       BookCategory = "languages"
	CategoryOther           BookCategory = "other"
)

var statusLabels = map[AnnouncementStatus]string{
	StatusActive:   "Actif",
	StatusReserved: "Réservé",
	StatusSold:     "Vendu",
	StatusRemoved:  "Retiré",
}

var conditionLabels = map[BookCondition]string{
	ConditionNew:        "Neuf",
	ConditionLikeNew:    "Comme neuf",
	ConditionGood:       "Bon état",
	ConditionAcceptable: "Acceptable",
	ConditionWorn:       "Usé",
}

var categoryLabels = map[BookCategory]string{
	CategoryMathematics:     "Mathématiques",
	CategoryComputerScience: "Informatique",
	CategoryPhysics:         "Physique",
	CategoryChemistry:       "Chimie",
	CategoryBiology:         "Biologie",
	CategoryEngineering:     "Ingénierie",
	CategoryMedicine:        "Médecine",
	CategoryEconomics:       "Économie",
	CategoryLaw:             "Droit",
	CategoryLiterature:      "Littérature",
	CategoryLanguages:       "Langues",
	CategoryOther:           "Autre",
}

// Display returns the French display label for the canonical value. This is
// the single conversion point used at the serialization boundary.
func (s AnnouncementStatus) Display() string { return displayOf(statusLabels, s) }

func (c BookCondition) Display() string { return displayOf(conditionLabels, c) }

func (c BookCategory) Display() string { return displayOf(categoryLabels, c) }

func (s AnnouncementStatus) Valid() bool { _, ok := statusLabels[s]; return ok }

func (c BookCondition) Valid() bool { _, ok := conditionLabels[c]; return ok }

func (c BookCategory) Valid() bool { _, ok := categoryLabels[c]; return ok }

func displayOf[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Categories lists every canonical category value, in display order.
func Categories() []BookCategory {
	return []BookCategory{
		CategoryMathematics, CategoryComputerScience, CategoryPhysics,
		CategoryChemistry, CategoryBiology, CategoryEngineering,
		CategoryMedicine, CategoryEconomics, CategoryLaw,
		CategoryLiterature, CategoryLanguages, CategoryOther,
	}
}

// Conditions lists every canonical condition value.
func Conditions() []BookCondition {
	return []BookCondition{
		ConditionNew, ConditionLikeNew, ConditionGood,
		ConditionAcceptable, ConditionWorn,
	}
}
