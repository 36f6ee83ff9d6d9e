// Package menu contiene el catálogo de funcionalidades que el sidebar de la aplicación
// asociada puede activar y las utilidades para agruparlo por categoría.
package menu

import "github.com/jhoicas/tenant-admin/internal/domain/entity"

// Categorías del catálogo.
const (
	CategoryInventory = "inventory"
	CategoryFinance   = "finance"
	CategorySales     = "sales"
	CategoryCustomer  = "customer"
	CategoryPDCA      = "pdca"
	CategoryDocument  = "document"
	CategoryOther     = "other"
)

// CategoryOrder orden de presentación de las categorías.
var CategoryOrder = []string{
	CategoryInventory,
	CategoryFinance,
	CategorySales,
	CategoryCustomer,
	CategoryPDCA,
	CategoryDocument,
	CategoryOther,
}

// CategoryNames etiquetas que muestra la aplicación asociada.
var CategoryNames = map[string]string{
	CategorySales:     "営業管理",
	CategoryCustomer:  "顧客管理",
	CategoryInventory: "在庫・発注管理",
	CategoryFinance:   "財務管理",
	CategoryPDCA:      "PDCA管理",
	CategoryDocument:  "ドキュメント管理",
	CategoryOther:     "その他",
}

// catalog las 20 funcionalidades activables, en orden de declaración.
var catalog = []entity.MenuItem{
	{ID: "inventory-management", Name: "在庫管理", Icon: "📦", Href: "/inventory", Description: "在庫情報の管理", Category: CategoryInventory},
	{ID: "purchase-management", Name: "発注管理", Icon: "🛒", Href: "/purchases", Description: "発注情報の管理", Category: CategoryInventory},
	{ID: "sales-orders", Name: "受注管理", Icon: "📋", Href: "/sales/orders", Description: "受注情報の管理", Category: CategoryInventory},

	{ID: "billing-management", Name: "請求管理", Icon: "💳", Href: "/billing", Description: "請求書の作成・管理", Category: CategoryFinance},
	{ID: "expense-management", Name: "経費管理", Icon: "📊", Href: "/expenses", Description: "経費の記録・管理", Category: CategoryFinance},
	{ID: "sales-quotes", Name: "見積管理", Icon: "💰", Href: "/sales/quotes", Description: "見積書の作成・管理", Category: CategoryFinance},

	{ID: "sales-opportunity", Name: "商談管理", Icon: "🤝", Href: "/sales/opportunities", Description: "営業案件・商談の進捗管理", Category: CategorySales},
	{ID: "sales-lead", Name: "見込み客管理", Icon: "🎯", Href: "/sales/leads", Description: "リード・見込み客の管理", Category: CategorySales},
	{ID: "sales-activity", Name: "営業活動管理", Icon: "📞", Href: "/sales/activities", Description: "訪問記録・営業活動の記録", Category: CategorySales},

	{ID: "customer-management", Name: "顧客管理", Icon: "👥", Href: "/customers", Description: "顧客情報・取引履歴の管理", Category: CategoryCustomer},

	{ID: "pdca-plan", Name: "計画管理", Icon: "📝", Href: "/pdca/plan", Description: "PDCAの計画フェーズ", Category: CategoryPDCA},
	{ID: "pdca-do", Name: "実行管理", Icon: "⚡", Href: "/pdca/do", Description: "PDCAの実行フェーズ", Category: CategoryPDCA},
	{ID: "pdca-check", Name: "評価管理", Icon: "📈", Href: "/pdca/check", Description: "PDCAの評価フェーズ", Category: CategoryPDCA},
	{ID: "pdca-action", Name: "改善管理", Icon: "🔧", Href: "/pdca/action", Description: "PDCAの改善フェーズ", Category: CategoryPDCA},

	{ID: "template-management", Name: "テンプレート管理", Icon: "📄", Href: "/templates", Description: "文書テンプレートの管理", Category: CategoryDocument},
	{ID: "minutes-management", Name: "議事録管理", Icon: "📝", Href: "/minutes", Description: "会議の議事録管理", Category: CategoryDocument},
	{ID: "document-management", Name: "ドキュメント管理", Icon: "📚", Href: "/documents", Description: "各種ドキュメントの管理", Category: CategoryDocument},

	{ID: "calendar", Name: "カレンダー", Icon: "📅", Href: "/calendar", Description: "スケジュール管理", Category: CategoryOther},
	{ID: "reports", Name: "レポート", Icon: "📊", Href: "/reports", Description: "各種レポートの表示", Category: CategoryOther},
	{ID: "analytics", Name: "分析ダッシュボード", Icon: "📈", Href: "/analytics", Description: "データ分析と可視化", Category: CategoryOther},
}

// Catalog devuelve una copia del catálogo completo.
func Catalog() []entity.MenuItem {
	out := make([]entity.MenuItem, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup busca una funcionalidad por id.
func Lookup(id string) (entity.MenuItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return entity.MenuItem{}, false
}
