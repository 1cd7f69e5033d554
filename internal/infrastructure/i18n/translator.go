// Package i18n translates the console's own strings. Backend data is shown
// as received.
package i18n

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	ErrGeneric    = "error.generic"
	ErrNetwork    = "error.network"
	ErrAuth       = "error.auth"
	ErrForbidden  = "error.forbidden"
	ErrNotFound   = "error.notFound"
	ErrConflict   = "error.conflict"
	ErrValidation = "error.validation"
	ErrServer     = "error.server"

	StateLoading  = "state.loading"
	StateEmpty    = "state.empty"
	StateDisabled = "state.disabled"
	StateStale    = "state.stale"

	ToastCreated  = "toast.created"
	ToastUpdated  = "toast.updated"
	ToastDeleted  = "toast.deleted"
	ToastSaved    = "toast.saved"
	ConfirmDelete = "confirm.delete"
	Cancelled     = "action.cancelled"

	PageOf = "table.pageOf"
)

var (
	English = language.English
	Arabic  = language.Arabic
)

var messages = map[string]map[language.Tag]string{
	ErrGeneric:    {English: "Something went wrong. Please try again.", Arabic: "حدث خطأ ما. يرجى المحاولة مرة أخرى."},
	ErrNetwork:    {English: "Cannot reach the server. Check your connection.", Arabic: "تعذر الوصول إلى الخادم. تحقق من اتصالك."},
	ErrAuth:       {English: "Your session has expired. Please sign in again.", Arabic: "انتهت صلاحية الجلسة. يرجى تسجيل الدخول مرة أخرى."},
	ErrForbidden:  {English: "You do not have access to this page.", Arabic: "ليس لديك صلاحية الوصول إلى هذه الصفحة."},
	ErrNotFound:   {English: "The requested item was not found.", Arabic: "العنصر المطلوب غير موجود."},
	ErrConflict:   {English: "This item is in use and cannot be changed.", Arabic: "هذا العنصر مستخدم ولا يمكن تعديله."},
	ErrValidation: {English: "Please correct the highlighted fields.", Arabic: "يرجى تصحيح الحقول المحددة."},
	ErrServer:     {English: "The server failed to process the request.", Arabic: "فشل الخادم في معالجة الطلب."},

	StateLoading:  {English: "Loading...", Arabic: "جار التحميل..."},
	StateEmpty:    {English: "No records found.", Arabic: "لا توجد سجلات."},
	StateDisabled: {English: "Select a filter to load data.", Arabic: "اختر عامل تصفية لتحميل البيانات."},
	StateStale:    {English: "Refreshing...", Arabic: "جار التحديث..."},

	ToastCreated:  {English: "%s created successfully", Arabic: "تم إنشاء %s بنجاح"},
	ToastUpdated:  {English: "%s updated successfully", Arabic: "تم تحديث %s بنجاح"},
	ToastDeleted:  {English: "%s deleted successfully", Arabic: "تم حذف %s بنجاح"},
	ToastSaved:    {English: "Changes saved", Arabic: "تم حفظ التغييرات"},
	ConfirmDelete: {English: "Delete %s? This cannot be undone.", Arabic: "حذف %s؟ لا يمكن التراجع عن هذا الإجراء."},
	Cancelled:     {English: "Cancelled", Arabic: "تم الإلغاء"},

	PageOf: {English: "Page %d of %d (%d total)", Arabic: "الصفحة %d من %d (الإجمالي %d)"},
}

// Supported lists the locales with a catalog
func Supported() []language.Tag {
	return []language.Tag{English, Arabic}
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for key, byTag := range messages {
		for tag, text := range byTag {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// Translator formats console strings for one locale
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	caser   cases.Caser
}

// New creates a translator for locale ("en", "ar"). Unknown locales fall
// back to English.
func New(locale string) (*Translator, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	tag := English
	if requested, err := language.Parse(locale); err == nil {
		tag, _, _ = language.NewMatcher(Supported()).Match(requested)
	}
	base, _ := tag.Base()
	if base.String() == "ar" {
		tag = Arabic
	} else {
		tag = English
	}
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		caser:   cases.Title(tag),
	}, nil
}

// Locale returns the locale in use
func (t *Translator) Locale() language.Tag {
	return t.tag
}

// RTL reports whether the locale is written right to left
func (t *Translator) RTL() bool {
	return t.tag == Arabic
}

// T translates key. A key without a message is returned unchanged.
func (t *Translator) T(key string, args ...any) string {
	if _, ok := messages[key]; !ok {
		return key
	}
	return t.printer.Sprintf(key, args...)
}

// Title capitalises a column or resource label
func (t *Translator) Title(s string) string {
	return t.caser.String(s)
}

// Number formats n with the locale's grouping
func (t *Translator) Number(n any) string {
	return t.printer.Sprintf("%v", n)
}
