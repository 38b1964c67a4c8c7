// Package i18n holds the user-facing notification strings in English and
// Turkish.
package i18n

import (
	"slices"
	"strings"
)

const (
	English = "en"
	Turkish = "tr"
)

// Key identifies a message in the catalogs.
type Key string

const (
	AddAccount               Key = "add_account"
	ViewAccounts             Key = "view_accounts"
	UpdateAccount            Key = "update_account"
	DeleteAccount            Key = "delete_account"
	AddCreditCardOutcome     Key = "add_credit_card_outcome"
	ViewCreditCardOutcomes   Key = "view_credit_card_outcomes"
	UpdateCreditCardOutcome  Key = "update_credit_card_outcome"
	DeleteCreditCardOutcome  Key = "delete_credit_card_outcome"
	AddAsset                 Key = "add_asset"
	ViewAssets               Key = "view_assets"
	UpdateAsset              Key = "update_asset"
	DeleteAsset              Key = "delete_asset"
	SwitchLanguage           Key = "switch_language"
	Info                     Key = "info"
	Error                    Key = "error"
	AccountAdded             Key = "account_added_successfully"
	AccountUpdated           Key = "account_updated_successfully"
	AccountDeleted           Key = "account_deleted_successfully"
	OutcomeAdded             Key = "credit_card_outcome_added"
	OutcomeUpdated           Key = "credit_card_outcome_updated"
	OutcomeDeleted           Key = "credit_card_outcome_deleted"
	AssetAdded               Key = "asset_added_successfully"
	AssetUpdated             Key = "asset_updated_successfully"
	AssetDeleted             Key = "asset_deleted_successfully"
	InvalidInput             Key = "invalid_input"
	TotalMoneyDistribution   Key = "total_money_distribution"
	NoData                   Key = "no_data"
	TotalOutcomeDistribution Key = "total_outcome_distribution"
	MoneyDistributionList    Key = "show_money_distribution_list"

	BalanceAdjusted  Key = "balance_adjusted"
	AccountInUse     Key = "account_in_use"
	NotFound         Key = "not_found"
	InternalError    Key = "internal_error"
	LanguageChanged  Key = "language_changed"
	ExportCompleted  Key = "export_completed"
	TotalMoney       Key = "total_money"
	TotalOutcome     Key = "total_outcome"
	TotalAssets      Key = "total_assets"
	ConfirmDelete    Key = "confirm_delete"
	DeleteCancelled  Key = "delete_cancelled"
	RateLimited      Key = "rate_limited"
)

var catalogs = map[string]map[Key]string{
	English: {
		AddAccount:               "Add Account",
		ViewAccounts:             "View Accounts",
		UpdateAccount:            "Update Account",
		DeleteAccount:            "Delete Account",
		AddCreditCardOutcome:     "Add Credit Card Outcome",
		ViewCreditCardOutcomes:   "View Credit Card Outcomes",
		UpdateCreditCardOutcome:  "Update Credit Card Outcome",
		DeleteCreditCardOutcome:  "Delete Credit Card Outcome",
		AddAsset:                 "Add Asset",
		ViewAssets:               "View Assets",
		UpdateAsset:              "Update Asset",
		DeleteAsset:              "Delete Asset",
		SwitchLanguage:           "Switch Language",
		Info:                     "Info",
		Error:                    "Error",
		AccountAdded:             "Account added successfully",
		AccountUpdated:           "Account updated successfully",
		AccountDeleted:           "Account deleted successfully",
		OutcomeAdded:             "Credit card outcome added successfully",
		OutcomeUpdated:           "Credit card outcome updated successfully",
		OutcomeDeleted:           "Credit card outcome deleted successfully",
		AssetAdded:               "Asset added successfully",
		AssetUpdated:             "Asset updated successfully",
		AssetDeleted:             "Asset deleted successfully",
		InvalidInput:             "Invalid input",
		TotalMoneyDistribution:   "Total Money Distribution",
		NoData:                   "No Data",
		TotalOutcomeDistribution: "Total Outcome Distribution",
		MoneyDistributionList:    "Money Distribution List",
		BalanceAdjusted:          "Balance adjusted successfully",
		AccountInUse:             "Account is used by credit card outcomes",
		NotFound:                 "Record not found",
		InternalError:            "Something went wrong",
		LanguageChanged:          "Language changed",
		ExportCompleted:          "Export completed",
		TotalMoney:               "Total Money",
		TotalOutcome:             "Total Outcome",
		TotalAssets:              "Total Assets",
		ConfirmDelete:            "Delete this record?",
		DeleteCancelled:          "Delete cancelled",
		RateLimited:              "Too many requests, try again later",
	},
	Turkish: {
		AddAccount:               "Hesap Ekle",
		ViewAccounts:             "Hesapları Görüntüle",
		UpdateAccount:            "Hesabı Güncelle",
		DeleteAccount:            "Hesabı Sil",
		AddCreditCardOutcome:     "Kredi Kartı Harcaması Ekle",
		ViewCreditCardOutcomes:   "Kredi Kartı Harcamalarını Görüntüle",
		UpdateCreditCardOutcome:  "Kredi Kartı Harcamasını Güncelle",
		DeleteCreditCardOutcome:  "Kredi Kartı Harcamasını Sil",
		AddAsset:                 "Varlık Ekle",
		ViewAssets:               "Varlıkları Görüntüle",
		UpdateAsset:              "Varlığı Güncelle",
		DeleteAsset:              "Varlığı Sil",
		SwitchLanguage:           "Dili Değiştir",
		Info:                     "Bilgi",
		Error:                    "Hata",
		AccountAdded:             "Hesap başarıyla eklendi",
		AccountUpdated:           "Hesap başarıyla güncellendi",
		AccountDeleted:           "Hesap başarıyla silindi",
		OutcomeAdded:             "Kredi kartı harcaması başarıyla eklendi",
		OutcomeUpdated:           "Kredi kartı harcaması başarıyla güncellendi",
		OutcomeDeleted:           "Kredi kartı harcaması başarıyla silindi",
		AssetAdded:               "Varlık başarıyla eklendi",
		AssetUpdated:             "Varlık başarıyla güncellendi",
		AssetDeleted:             "Varlık başarıyla silindi",
		InvalidInput:             "Geçersiz giriş",
		TotalMoneyDistribution:   "Toplam Para Dağılımı",
		NoData:                   "Veri Yok",
		TotalOutcomeDistribution: "Toplam Harcama Dağılımı",
		MoneyDistributionList:    "Para Dağılımı",
		BalanceAdjusted:          "Bakiye başarıyla güncellendi",
		AccountInUse:             "Hesap kredi kartı harcamalarında kullanılıyor",
		NotFound:                 "Kayıt bulunamadı",
		InternalError:            "Bir şeyler ters gitti",
		LanguageChanged:          "Dil değiştirildi",
		ExportCompleted:          "Dışa aktarma tamamlandı",
		TotalMoney:               "Toplam Para",
		TotalOutcome:             "Toplam Harcama",
		TotalAssets:              "Toplam Varlık",
		ConfirmDelete:            "Bu kayıt silinsin mi?",
		DeleteCancelled:          "Silme iptal edildi",
		RateLimited:              "Çok fazla istek, daha sonra tekrar deneyin",
	},
}

// Supported lists the catalog languages in toggle order.
func Supported() []string {
	return []string{English, Turkish}
}

// IsSupported reports whether lang has a catalog.
func IsSupported(lang string) bool {
	return slices.Contains(Supported(), normalize(lang))
}

// Normalize returns lang when it has a catalog, English otherwise.
func Normalize(lang string) string {
	lang = normalize(lang)
	if _, ok := catalogs[lang]; ok {
		return lang
	}
	return English
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// T returns the message for key in lang. Unknown languages and keys missing
// from a catalog fall back to English, and unknown keys to the key itself.
func T(lang string, key Key) string {
	if msg, ok := catalogs[Normalize(lang)][key]; ok {
		return msg
	}
	if msg, ok := catalogs[English][key]; ok {
		return msg
	}
	return string(key)
}

// Next toggles between English and Turkish.
func Next(lang string) string {
	if Normalize(lang) == English {
		return Turkish
	}
	return English
}
