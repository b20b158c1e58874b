package memory

import (
	"context"
	"sort"

	"finhub/internal/core"
)

type CategoryStore struct {
	s *Store
}

func (st *CategoryStore) List(_ context.Context, owner string) ([]core.Category, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	categories := []core.Category{}
	for _, c := range st.s.categories {
		if c.Owner == owner {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (st *CategoryStore) Get(_ context.Context, id, owner string) (core.Category, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	c, ok := st.s.categories[id]
	if !ok || c.Owner != owner {
		return core.Category{}, core.ErrNotFound
	}
	return c, nil
}

func (st *CategoryStore) Create(_ context.Context, category core.Category) (core.Category, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	now := st.s.now()
	category.CreatedAt = now
	category.UpdatedAt = now
	st.s.categories[category.ID] = category
	return category, nil
}

func (st *CategoryStore) Rename(_ context.Context, id, owner, name string) (core.Category, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	c, ok := st.s.categories[id]
	if !ok || c.Owner != owner {
		return core.Category{}, core.ErrNotFound
	}
	c.Name = name
	c.UpdatedAt = st.s.now()
	st.s.categories[id] = c
	return c, nil
}

func (st *CategoryStore) Delete(_ context.Context, id, owner string) (string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	c, ok := st.s.categories[id]
	if !ok || c.Owner != owner {
		return "", core.ErrNotFound
	}
	delete(st.s.categories, id)
	return id, nil
}

func (st *CategoryStore) BulkDelete(_ context.Context, ids []string, owner string) ([]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if c, ok := st.s.categories[id]; ok && c.Owner == owner {
			delete(st.s.categories, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}
