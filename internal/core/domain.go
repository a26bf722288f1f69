package core

import (
	"errors"
	"time"
)

const (
	Income  CategoryType = "income"
	Expense CategoryType = "expense"
)

// Fallbacks used when a transaction references a category the client
// cannot resolve locally.
const (
	DefaultCategoryIcon  = "💵"
	DefaultCategoryColor = "#6B7280"
)

type (
	CategoryType string

	// Identity is the signed-in user as resolved by the backend.
	Identity struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	// Category classifies transactions. Read-only from the client's
	// perspective; its type decides the sign of linked transactions.
	Category struct {
		ID    int64        `json:"id"`
		Name  string       `json:"name"`
		Type  CategoryType `json:"type"`
		Color string       `json:"color"`
		Icon  string       `json:"icon"`
	}

	// Transaction is a single income or expense event. Its effective
	// sign is inherited from the linked category, never stored.
	Transaction struct {
		ID          int64     `json:"id"`
		Amount      Money     `json:"amount"`
		Date        Date      `json:"date"`
		Description string    `json:"description,omitempty"`
		CategoryID  int64     `json:"category_id"`
		Category    *Category `json:"category,omitempty"`
	}

	// DateFilter holds transient list-query bounds. Empty bounds are
	// omitted from the request entirely, never sent as empty strings.
	DateFilter struct {
		Start string
		End   string
	}

	// Summary is the dashboard aggregate returned by the backend.
	Summary struct {
		TotalIncome   Money `json:"total_income"`
		TotalExpenses Money `json:"total_expenses"`
		Balance       Money `json:"balance"`
	}

	// ChartItem is one category's share of total expenses.
	ChartItem struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
		Color    string `json:"color"`
	}

	Date struct {
		time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category")
)

const dateLayout = "2006-01-02"

// ParseDate parses the backend's YYYY-MM-DD wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Display renders the date the way transaction rows show it.
func (d Date) Display() string {
	return d.Format("Jan 2, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CategoryIndex resolves categories by ID with the shared fallbacks
// applied for dangling references.
type CategoryIndex map[int64]Category

func IndexCategories(cats []Category) CategoryIndex {
	idx := make(CategoryIndex, len(cats))
	for _, c := range cats {
		idx[c.ID] = c
	}
	return idx
}

// Lookup returns the category for id, or a placeholder carrying the
// default icon and color when the reference cannot be resolved.
func (idx CategoryIndex) Lookup(id int64) Category {
	if c, ok := idx[id]; ok {
		if c.Icon == "" {
			c.Icon = DefaultCategoryIcon
		}
		if c.Color == "" {
			c.Color = DefaultCategoryColor
		}
		return c
	}
	return Category{ID: id, Icon: DefaultCategoryIcon, Color: DefaultCategoryColor}
}

// FilterByType returns the categories matching t, preserving order.
func FilterByType(cats []Category, t CategoryType) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// SignedAmount formats a transaction amount with its category-derived
// sign: "+" for income-typed categories, "-" otherwise.
func SignedAmount(amount Money, categoryType CategoryType) string {
	if categoryType == Income {
		return "+" + amount.FormatUSD()
	}
	return "-" + amount.FormatUSD()
}
