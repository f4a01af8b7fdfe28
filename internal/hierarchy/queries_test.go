package hierarchy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dagcategory/internal/models"
)

// family builds root → branch → leaf plus an unrelated root "rootroot",
// whose path shares a prefix with "root" but is not its descendant.
func family(t *testing.T) (*Tree, map[string]*models.Category) {
	t.Helper()
	tree, _ := newTestTree(t)
	root := mustCreate(t, tree, "root", nil)
	branch := mustCreate(t, tree, "branch", root)
	leaf := mustCreate(t, tree, "leaf", branch)
	rootroot := mustCreate(t, tree, "rootroot", nil)
	return tree, map[string]*models.Category{
		"root": root, "branch": branch, "leaf": leaf, "rootroot": rootroot,
	}
}

func ids(cats []models.Category) []uuid.UUID {
	out := make([]uuid.UUID, len(cats))
	for i, c := range cats {
		out[i] = c.ID
	}
	return out
}

func TestTopLevel(t *testing.T) {
	tree, f := family(t)

	top, err := tree.TopLevel(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f["root"].ID, f["rootroot"].ID}, ids(top))
}

func TestChildren(t *testing.T) {
	tree, f := family(t)

	children, err := tree.Children(context.Background(), f["root"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["branch"].ID}, ids(children))
}

func TestAllDescendants(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	descendants, err := tree.AllDescendants(ctx, f["root"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["branch"].ID, f["leaf"].ID}, ids(descendants))
	assert.NotContains(t, ids(descendants), f["root"].ID)
	assert.NotContains(t, ids(descendants), f["rootroot"].ID, "prefix match must stop at the delimiter")

	for _, name := range []string{"leaf", "rootroot"} {
		descendants, err := tree.AllDescendants(ctx, f[name])
		require.NoError(t, err)
		assert.Empty(t, descendants, "%s is a leaf", name)

		leaf, err := tree.IsLeaf(ctx, f[name])
		require.NoError(t, err)
		assert.True(t, leaf)
	}

	leaf, err := tree.IsLeaf(ctx, f["branch"])
	require.NoError(t, err)
	assert.False(t, leaf)
}

func TestSubtree(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	subtree, err := tree.Subtree(ctx, f["root"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["root"].ID, f["branch"].ID, f["leaf"].ID}, ids(subtree))

	subtree, err = tree.Subtree(ctx, f["leaf"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["leaf"].ID}, ids(subtree))
}

func TestBranchAndAncestors(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	branch, err := tree.Branch(ctx, f["leaf"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["leaf"].ID, f["branch"].ID, f["root"].ID}, ids(branch))

	ancestors, err := tree.AncestorsOldestFirst(ctx, f["leaf"])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f["root"].ID, f["branch"].ID}, ids(ancestors))

	branch, err = tree.Branch(ctx, f["branch"])
	require.NoError(t, err)
	assert.Len(t, branch, 2)

	ancestors, err = tree.AncestorsOldestFirst(ctx, f["root"])
	require.NoError(t, err)
	assert.Empty(t, ancestors)
}

func TestLeavesAndInnerNodes(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	leaves, err := tree.Leaves(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f["leaf"].ID, f["rootroot"].ID}, ids(leaves))

	inner, err := tree.InnerNodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f["root"].ID, f["branch"].ID}, ids(inner))
}

func TestGetAndGetByPath(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	got, err := tree.Get(ctx, f["branch"].ID)
	require.NoError(t, err)
	assert.Equal(t, "root/branch", got.Path)

	got, err = tree.GetByPath(ctx, "root/branch/leaf")
	require.NoError(t, err)
	assert.Equal(t, f["leaf"].ID, got.ID)

	_, err = tree.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = tree.GetByPath(ctx, "root/missing")
	assert.True(t, IsNotFound(err))
}

func TestNextSortOrder(t *testing.T) {
	tree, f := family(t)
	ctx := context.Background()

	next, err := tree.NextSortOrder(ctx, &f["root"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	next, err = tree.NextSortOrder(ctx, &f["leaf"].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestForest(t *testing.T) {
	tree, f := family(t)

	roots, err := tree.Forest(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, f["root"].ID, roots[0].ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, f["branch"].ID, roots[0].Children[0].ID)
	assert.Equal(t, f["leaf"].ID, roots[0].Children[0].Children[0].ID)
	assert.Equal(t, 2, roots[0].Children[0].Children[0].Depth)
}
