package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"covercart/internal/counter"
	"covercart/internal/domain"
	"covercart/internal/notify"
	"covercart/internal/store"
)

// Reconciler is the slice of the cart engine the handlers drive.
type Reconciler interface {
	Refresh(ctx context.Context) error
	Remove(ctx context.Context, productID string) error
	ChangeQuantity(ctx context.Context, productID string, delta int) error
	Checkout(onClose func()) decimal.Decimal
}

// Deps carries the collaborators handlers need.
type Deps struct {
	Store      *store.CartStore
	Reconciler Reconciler
	Notices    *notify.Feed
	BadgeCount func() int
	Stats      *counter.Driver
}

type cartItemView struct {
	ProductID     string `json:"productId"`
	Model         string `json:"model"`
	Image         string `json:"image,omitempty"`
	Price         string `json:"price,omitempty"`
	DiscountPrice string `json:"discountPrice,omitempty"`
	Quantity      int    `json:"quantity"`
}

type cartView struct {
	Items []cartItemView `json:"items"`
	Total string         `json:"total"`
	Count int            `json:"count"`
}

func toCartView(snap store.Snapshot) cartView {
	items := make([]cartItemView, 0, len(snap.Items))
	for _, it := range snap.Items {
		view := cartItemView{
			ProductID: it.ProductID(),
			Quantity:  it.Quantity,
		}
		if it.Product != nil {
			view.Model = it.Product.Model
			view.Image = it.Product.Image
			if it.Product.Price != nil {
				view.Price = it.Product.Price.StringFixed(2)
			}
			if it.Product.DiscountPrice != nil {
				view.DiscountPrice = it.Product.DiscountPrice.StringFixed(2)
			}
		}
		items = append(items, view)
	}
	return cartView{
		Items: items,
		Total: snap.Total.StringFixed(2),
		Count: snap.Count,
	}
}

func cartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartView(deps.Store.Snapshot()))
	}
}

func cartCountHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := deps.Store.Snapshot().Count
		if deps.BadgeCount != nil {
			count = deps.BadgeCount()
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func removeItemHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if err := deps.Reconciler.Remove(c.Request.Context(), productID); err != nil {
			writeMutationError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartView(deps.Store.Snapshot()))
	}
}

type quantityInput struct {
	Delta int `json:"delta"`
}

func changeQuantityHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		var in quantityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if in.Delta == 0 {
			c.JSON(http.StatusOK, toCartView(deps.Store.Snapshot()))
			return
		}
		if err := deps.Reconciler.ChangeQuantity(c.Request.Context(), productID, in.Delta); err != nil {
			writeMutationError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartView(deps.Store.Snapshot()))
	}
}

func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		total := deps.Reconciler.Checkout(nil)
		c.JSON(http.StatusOK, gin.H{"total": total.StringFixed(2)})
	}
}

func noticesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		notices := deps.Notices.Drain()
		if notices == nil {
			notices = []notify.Notice{}
		}
		c.JSON(http.StatusOK, gin.H{"notices": notices})
	}
}

func statsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Stats == nil {
			c.JSON(http.StatusOK, gin.H{"values": []int{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"values": deps.Stats.Values()})
	}
}

// writeMutationError maps engine failures onto the gateway surface. The
// local view is already consistent; the status only tells the UI the intent
// did not take.
func writeMutationError(c *gin.Context, logger *log.Logger, err error) {
	var netErr *domain.NetworkError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &netErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	default:
		logger.Printf("cart mutation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
