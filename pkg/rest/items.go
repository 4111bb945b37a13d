package rest

import (
	"context"
	"fmt"

	"github.com/gridapp/grid-go/pkg/item"
	"github.com/gridapp/grid-go/pkg/types"
)

// CreateResponse is the server's acknowledgement of a created item.
type CreateResponse struct {
	ItemID int64  `json:"item_id"`
	Title  string `json:"title,omitempty"`
	Link   string `json:"link,omitempty"`
}

// UpdateResponse is the server's acknowledgement of an updated item.
type UpdateResponse struct {
	Revision int64  `json:"revision"`
	Title    string `json:"title,omitempty"`
}

// ItemBatch is one page of a filtered item listing.
type ItemBatch struct {
	Total    int          `json:"total"`
	Filtered int          `json:"filtered"`
	Items    []*item.Item `json:"items"`
}

// GetItem fetches a full item record. The decoded item replaces any prior
// client-side state wholesale; callers should swap it in rather than merge.
func (c *Client) GetItem(ctx context.Context, itemID int64) (*item.Item, error) {
	it := item.NewItem()
	if err := c.get(ctx, fmt.Sprintf("/item/%d", itemID), nil, it); err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	c.logItemFetch(itemID)
	return it, nil
}

// CreateItem creates an item in the given app from a write-back payload
// assembled by Item.CreateData.
func (c *Client) CreateItem(ctx context.Context, appID int64, data *item.CreateData) (*CreateResponse, error) {
	var resp CreateResponse
	if err := c.post(ctx, fmt.Sprintf("/item/app/%d/", appID), data, &resp); err != nil {
		return nil, fmt.Errorf("failed to create item in app %d: %w", appID, err)
	}
	c.logItemPush("create", resp.ItemID)
	return &resp, nil
}

// UpdateItem pushes changed values for an existing item. Only the payload's
// field projections are sent; the external id is owned by creation and is
// stripped here.
func (c *Client) UpdateItem(ctx context.Context, itemID int64, data *item.CreateData) (*UpdateResponse, error) {
	body := &item.CreateData{
		FileIDs: data.FileIDs,
		Tags:    data.Tags,
		Fields:  data.Fields,
	}
	var resp UpdateResponse
	if err := c.put(ctx, fmt.Sprintf("/item/%d", itemID), body, &resp); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}
	c.logItemPush("update", itemID)
	return &resp, nil
}

// DeleteItem permanently deletes an item.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/item/%d", itemID)); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}
	return nil
}

// FilterItems lists items in an app matching the filter. A nil filter
// returns the app's default listing.
func (c *Client) FilterItems(ctx context.Context, appID int64, filter *ItemFilter) (*ItemBatch, error) {
	if filter == nil {
		filter = NewItemFilter()
	}
	var batch ItemBatch
	if err := c.post(ctx, fmt.Sprintf("/item/app/%d/filter/", appID), filter, &batch); err != nil {
		return nil, fmt.Errorf("failed to filter items in app %d: %w", appID, err)
	}
	return &batch, nil
}

// GetApp fetches an application, including the field template used to seed
// new items.
func (c *Client) GetApp(ctx context.Context, appID int64) (*item.Application, error) {
	var app item.Application
	if err := c.get(ctx, fmt.Sprintf("/app/%d", appID), nil, &app); err != nil {
		return nil, fmt.Errorf("failed to get app %d: %w", appID, err)
	}
	return &app, nil
}

// GetStatus fetches the authenticated user's account status.
func (c *Client) GetStatus(ctx context.Context) (*types.User, error) {
	var wrapper struct {
		User types.User `json:"user"`
	}
	if err := c.get(ctx, "/user/status", nil, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to get user status: %w", err)
	}
	return &wrapper.User, nil
}

func (c *Client) logItemFetch(itemID int64) {
	if c.logger != nil {
		c.logger.LogItemFetch(itemID)
	}
}

func (c *Client) logItemPush(action string, itemID int64) {
	if c.logger != nil {
		c.logger.LogItemPush(action, itemID)
	}
}
