package ledger

import "github.com/GregMSThompson/ledger-backend/internal/models"

// Reserved and fallback names.
const (
	TransferCategory     = "Transfer"
	BillsCategory        = "Bills"
	OtherExpenseCategory = "Other"
	OtherIncomeCategory  = "Other Income"
	UncategorizedAccount = "Uncategorized account"
)

// Icon is a symbolic glyph name from the fixed catalog.
type Icon string

const (
	IconUtensils     Icon = "utensils"
	IconShoppingCart Icon = "shopping-cart"
	IconCar          Icon = "car"
	IconGamepad      Icon = "gamepad"
	IconReceipt      Icon = "receipt"
	IconTrendingUp   Icon = "trending-up"
	IconShuffle      Icon = "shuffle"
	IconMore         Icon = "more"
	IconBriefcase    Icon = "briefcase"
	IconStar         Icon = "star"
	IconLandmark     Icon = "landmark"
	IconCreditCard   Icon = "credit-card"
	IconWallet       Icon = "wallet"
	IconSmartphone   Icon = "smartphone"
	IconHome         Icon = "home"
	IconHeart        Icon = "heart"
	IconGift         Icon = "gift"
	IconBook         Icon = "book"
	IconPlane        Icon = "plane"
	IconCoffee       Icon = "coffee"
)

var icons = []Icon{
	IconUtensils, IconShoppingCart, IconCar, IconGamepad, IconReceipt, IconTrendingUp,
	IconShuffle, IconMore, IconBriefcase, IconStar, IconLandmark, IconCreditCard,
	IconWallet, IconSmartphone, IconHome, IconHeart, IconGift, IconBook, IconPlane, IconCoffee,
}

// Icons lists the catalog in display order.
func Icons() []Icon {
	return append([]Icon(nil), icons...)
}

// ParseIcon validates a name against the catalog.
func ParseIcon(name string) (Icon, bool) {
	for _, ic := range icons {
		if string(ic) == name {
			return ic, true
		}
	}
	return "", false
}

// ResolveIcon is the display lookup: unknown names render as IconMore.
func ResolveIcon(name string) Icon {
	if ic, ok := ParseIcon(name); ok {
		return ic
	}
	return IconMore
}

// Palette colors, chart order.
const (
	ColorSky    = "#0EA5E9"
	ColorGreen  = "#22C55E"
	ColorOrange = "#F97316"
	ColorViolet = "#8B5CF6"
	ColorPink   = "#EC4899"
	ColorAmber  = "#FACC15"
	ColorSlate  = "#64748B"

	FallbackColor = ColorSlate
)

var palette = []string{ColorSky, ColorGreen, ColorOrange, ColorViolet, ColorPink, ColorAmber, ColorSlate}

func Palette() []string {
	return append([]string(nil), palette...)
}

func IsPaletteColor(c string) bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

// CategorySeed is one entry of the default category list.
type CategorySeed struct {
	Name  string
	Icon  Icon
	Color string
}

var defaultExpense = []CategorySeed{
	{Name: "Food", Icon: IconUtensils, Color: ColorSky},
	{Name: "Shopping", Icon: IconShoppingCart, Color: ColorGreen},
	{Name: "Transport", Icon: IconCar, Color: ColorOrange},
	{Name: "Entertainment", Icon: IconGamepad, Color: ColorViolet},
	{Name: BillsCategory, Icon: IconReceipt, Color: ColorPink},
	{Name: "Investment", Icon: IconTrendingUp, Color: ColorAmber},
	{Name: OtherExpenseCategory, Icon: IconMore, Color: ColorSlate},
}

var defaultIncome = []CategorySeed{
	{Name: "Salary", Icon: IconBriefcase, Color: ColorGreen},
	{Name: "Bonus", Icon: IconStar, Color: ColorAmber},
	{Name: OtherIncomeCategory, Icon: IconMore, Color: ColorSlate},
}

// DefaultCategories returns the seed list for a kind.
func DefaultCategories(kind models.Kind) []CategorySeed {
	switch kind {
	case models.KindExpense:
		return append([]CategorySeed(nil), defaultExpense...)
	case models.KindIncome:
		return append([]CategorySeed(nil), defaultIncome...)
	default:
		return nil
	}
}

// FallbackCategory names the category used to display unknown names of a kind.
func FallbackCategory(kind models.Kind) string {
	if kind == models.KindIncome {
		return OtherIncomeCategory
	}
	return OtherExpenseCategory
}

// IsReserved reports whether a category name is system-owned.
func IsReserved(name string) bool {
	return name == TransferCategory
}

// CategoryStyle is what a client needs to render a category reference.
type CategoryStyle struct {
	Name  string `json:"name"`
	Icon  Icon   `json:"icon"`
	Color string `json:"color"`
}

var transferStyle = CategoryStyle{Name: TransferCategory, Icon: IconShuffle, Color: ColorSlate}

// ResolveStyle maps a stored category name to its icon and color. Deleted or
// unknown names fall back to the kind's "other" category.
func ResolveStyle(kind models.Kind, name string, categories []models.Category) CategoryStyle {
	if IsReserved(name) {
		return transferStyle
	}
	if c, ok := findCategory(name, categories); ok {
		return CategoryStyle{Name: c.Name, Icon: ResolveIcon(c.Icon), Color: colorOrFallback(c.Color)}
	}

	fallback := FallbackCategory(kind)
	if c, ok := findCategory(fallback, categories); ok {
		return CategoryStyle{Name: c.Name, Icon: ResolveIcon(c.Icon), Color: colorOrFallback(c.Color)}
	}
	return CategoryStyle{Name: fallback, Icon: IconMore, Color: FallbackColor}
}

// HasCategory reports whether name exists in the given set.
func HasCategory(name string, categories []models.Category) bool {
	_, ok := findCategory(name, categories)
	return ok
}

func findCategory(name string, categories []models.Category) (models.Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

func colorOrFallback(c string) string {
	if c == "" {
		return FallbackColor
	}
	return c
}
