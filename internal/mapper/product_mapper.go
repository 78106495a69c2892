package mapper

import (
	"time"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct {
	categoryMapper *CategoryMapper
}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{categoryMapper: NewCategoryMapper()}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	images := make([]string, len(p.Images))
	copy(images, p.Images)

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		CategoryId:  p.CategoryId,
		Category:    m.categoryMapper.ToEntity(p.Category),
		SellerId:    p.SellerId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	// Category is left nil so gorm does not upsert the association.
	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      datatypes.JSONSlice[string](p.Images),
		CategoryId:  p.CategoryId,
		SellerId:    p.SellerId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

// ToDTO shapes a product for the chat transport (string ids, nested category).
func (m *ProductMapper) ToDTO(p *entity.Product) dto.ProductDTO {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	res := dto.ProductDTO{
		Id:          p.Id.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		SellerId:    p.SellerId.String(),
		CreatedAt:   p.CreatedAt,
	}
	if p.Category != nil {
		res.Category = &dto.CategoryDTO{
			Id:          p.Category.Id.String(),
			Name:        p.Category.Name,
			Description: p.Category.Description,
		}
	}
	return res
}

func (m *ProductMapper) ToDTOs(products []*entity.Product) []dto.ProductDTO {
	res := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		res = append(res, m.ToDTO(p))
	}
	return res
}
