package usecase

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID.Hex()] = &clone

	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Photo != nil {
		user.Photo = *params.Photo
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	clone := *user
	return &clone, nil
}

type fakeTokenRepo struct {
	tokens []*model.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{}
}

func (r *fakeTokenRepo) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	token.ID = bson.NewObjectID()
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now

	clone := *token
	r.tokens = append(r.tokens, &clone)

	return token, nil
}

func (r *fakeTokenRepo) GetValidTokenByHash(
	_ context.Context,
	tokenHash string,
) (*model.PasswordResetToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.ExpiresAt.After(time.Now()) {
			clone := *token
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTokenRepo) DeleteUserTokens(_ context.Context, userID string) error {
	kept := r.tokens[:0]
	for _, token := range r.tokens {
		if token.UserID.Hex() != userID {
			kept = append(kept, token)
		}
	}
	r.tokens = kept
	return nil
}

func (r *fakeTokenRepo) DeleteToken(_ context.Context, id string) error {
	kept := r.tokens[:0]
	for _, token := range r.tokens {
		if token.ID.Hex() != id {
			kept = append(kept, token)
		}
	}
	r.tokens = kept
	return nil
}

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	product.ID = bson.NewObjectID()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	clone := *product
	r.products[product.ID.Hex()] = &clone

	return product, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id string) (*model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) ListProductsByUser(_ context.Context, userID string) ([]*model.Product, error) {
	var products []*model.Product
	for _, product := range r.products {
		if product.UserID.Hex() == userID {
			clone := *product
			products = append(products, &clone)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *fakeProductRepo) UpdateProduct(
	_ context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Category != nil {
		product.Category = *params.Category
	}
	if params.Quantity != nil {
		product.Quantity = *params.Quantity
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Image != nil {
		product.Image = *params.Image
	}
	product.UpdatedAt = time.Now()

	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type fakeMailer struct {
	sendErr error
	sent    []sentEmail
}

type sentEmail struct {
	to       []string
	subject  string
	htmlBody string
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, htmlBody: htmlBody})
	return nil
}
