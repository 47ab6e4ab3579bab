// Package catalog holds the static product reference data. It is read-only;
// the ledger snapshots what it needs when products enter the cart.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/edrone/storefront/internal/domain"
)

var categories = []domain.Category{
	domain.CategoryModa,
	domain.CategoryCelulares,
	domain.CategoryComida,
	domain.CategoryProdutosDeBeleza,
}

var products = []domain.Product{
	{ID: 1, Name: "Tênis de Corrida Neon", Price: price("349.90"), Category: domain.CategoryModa, ImageURL: "https://picsum.photos/seed/fashion1/400/300"},
	{ID: 2, Name: "Jaqueta Corta-Vento", Price: price("199.99"), Category: domain.CategoryModa, ImageURL: "https://picsum.photos/seed/fashion2/400/300"},
	{ID: 3, Name: "Calça Jeans Premium", Price: price("249.50"), Category: domain.CategoryModa, ImageURL: "https://picsum.photos/seed/fashion3/400/300"},
	{ID: 4, Name: "Óculos de Sol Aviador", Price: price("450.00"), Category: domain.CategoryModa, ImageURL: "https://picsum.photos/seed/fashion4/400/300"},
	{ID: 5, Name: "Smartphone Pro X", Price: price("3999.00"), Category: domain.CategoryCelulares, ImageURL: "https://picsum.photos/seed/phone1/400/300"},
	{ID: 6, Name: "Fone de Ouvido Sem Fio", Price: price("599.00"), Category: domain.CategoryCelulares, ImageURL: "https://picsum.photos/seed/phone2/400/300"},
	{ID: 7, Name: "Smartwatch Fitness", Price: price("899.90"), Category: domain.CategoryCelulares, ImageURL: "https://picsum.photos/seed/phone3/400/300"},
	{ID: 8, Name: "Carregador Portátil Turbo", Price: price("159.00"), Category: domain.CategoryCelulares, ImageURL: "https://picsum.photos/seed/phone4/400/300"},
	{ID: 9, Name: "Pizza Artesanal de Calabresa", Price: price("59.90"), Category: domain.CategoryComida, ImageURL: "https://picsum.photos/seed/food1/400/300"},
	{ID: 10, Name: "Hambúrguer Gourmet Duplo", Price: price("39.90"), Category: domain.CategoryComida, ImageURL: "https://picsum.photos/seed/food2/400/300"},
	{ID: 11, Name: "Combo de Sushi (20 Peças)", Price: price("79.99"), Category: domain.CategoryComida, ImageURL: "https://picsum.photos/seed/food3/400/300"},
	{ID: 12, Name: "Açaí na Tigela 500ml", Price: price("25.00"), Category: domain.CategoryComida, ImageURL: "https://picsum.photos/seed/food4/400/300"},
	{ID: 13, Name: "Sérum Facial Vitamina C", Price: price("129.90"), Category: domain.CategoryProdutosDeBeleza, ImageURL: "https://picsum.photos/seed/beauty1/400/300"},
	{ID: 14, Name: "Kit de Maquiagem Profissional", Price: price("299.00"), Category: domain.CategoryProdutosDeBeleza, ImageURL: "https://picsum.photos/seed/beauty2/400/300"},
	{ID: 15, Name: "Perfume Importado Floral", Price: price("499.90"), Category: domain.CategoryProdutosDeBeleza, ImageURL: "https://picsum.photos/seed/beauty3/400/300"},
	{ID: 16, Name: "Creme Hidratante Corporal", Price: price("79.50"), Category: domain.CategoryProdutosDeBeleza, ImageURL: "https://picsum.photos/seed/beauty4/400/300"},
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// All returns every product, in catalog order.
func All() []domain.Product {
	result := make([]domain.Product, len(products))
	copy(result, products)
	return result
}

// ByCategory returns the products of one category, in catalog order.
func ByCategory(category domain.Category) []domain.Product {
	var result []domain.Product
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// Find returns the product with the given id.
func Find(id int64) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories returns the fixed category list.
func Categories() []domain.Category {
	result := make([]domain.Category, len(categories))
	copy(result, categories)
	return result
}
