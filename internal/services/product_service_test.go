// internal/services/product_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewProductService(s.db)
}

func (s *ProductServiceTestSuite) TestCreateRecordsOwner() {
	product, err := s.service.Create("seller@example.com", "Hasan", &CreateProductRequest{
		Name:     "Embroidered Panjabi",
		Price:    89.5,
		Quantity: 12,
		Category: "festive",
		SizeS:    4,
		SizeM:    4,
		SizeL:    4,
		Tags:     []string{"eid", "silk"},
	})
	s.Require().NoError(err)
	s.Equal("seller@example.com", product.SellerEmail)
	s.Equal("Hasan", product.SellerName)
	s.Equal(12, product.Quantity)
}

func (s *ProductServiceTestSuite) TestUpdateRejectsNonOwner() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 10)

	_, err := s.service.Update(product.ID, "intruder@example.com", &UpdateProductRequest{
		Name:  "Hijacked",
		Price: 1.0,
	})
	s.Require().ErrorIs(err, ErrForbidden)

	fresh, err := s.service.GetByID(product.ID)
	s.Require().NoError(err)
	s.Equal("Classic White Panjabi", fresh.Name)
}

func (s *ProductServiceTestSuite) TestUpdateReplacesMutableFields() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 10)

	updated, err := s.service.Update(product.ID, "owner@example.com", &UpdateProductRequest{
		Name:        "Premium Panjabi",
		Price:       120,
		Quantity:    5,
		Category:    "premium",
		Description: "Updated description",
		Image:       "https://cdn.example.com/new.jpg",
		SizeS:       1,
		SizeM:       2,
		SizeL:       2,
	})
	s.Require().NoError(err)
	s.Equal("Premium Panjabi", updated.Name)
	s.Equal(5, updated.Quantity)
	s.Equal("owner@example.com", updated.SellerEmail)
}

func (s *ProductServiceTestSuite) TestDeleteRejectsNonOwner() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 10)

	err := s.service.Delete(product.ID, "intruder@example.com")
	s.Require().ErrorIs(err, ErrForbidden)

	s.Require().NoError(s.service.Delete(product.ID, "owner@example.com"))

	_, err = s.service.GetByID(product.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ProductServiceTestSuite) TestListBySeller() {
	createTestProduct(s.T(), s.db, "a@example.com", 5)
	createTestProduct(s.T(), s.db, "a@example.com", 7)
	createTestProduct(s.T(), s.db, "b@example.com", 3)

	products, err := s.service.ListBySeller("a@example.com")
	s.Require().NoError(err)
	s.Len(products, 2)
}

func (s *ProductServiceTestSuite) TestAdjustQuantity() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 10)

	s.Require().NoError(s.service.AdjustQuantity(product.ID, 3, QuantityDecrease))
	s.Require().NoError(s.service.AdjustQuantity(product.ID, 1, QuantityIncrease))

	fresh, err := s.service.GetByID(product.ID)
	s.Require().NoError(err)
	s.Equal(8, fresh.Quantity)
}

func (s *ProductServiceTestSuite) TestAdjustQuantityNeverGoesNegative() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 2)

	err := s.service.AdjustQuantity(product.ID, 5, QuantityDecrease)
	s.Require().ErrorIs(err, ErrConflict)

	fresh, err := s.service.GetByID(product.ID)
	s.Require().NoError(err)
	s.Equal(2, fresh.Quantity)
}

func (s *ProductServiceTestSuite) TestConcurrentAdjustmentsLoseNoUpdate() {
	product := createTestProduct(s.T(), s.db, "owner@example.com", 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.service.AdjustQuantity(product.ID, 3, QuantityDecrease))
		}()
	}
	wg.Wait()

	fresh, err := s.service.GetByID(product.ID)
	s.Require().NoError(err)
	s.Equal(70, fresh.Quantity)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
