package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gudang/internal/barcode"
	"gudang/internal/config"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUploadSize = 5 << 20 // 5MB

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ProductHandler handles HTTP requests for products, including multipart
// form submissions with an optional image file.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	cfg      *config.Config
	log      *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, cfg *config.Config, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		cfg:      cfg,
		log:      log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The
// categories route must come before /:id so it is not captured as an ID.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/categories", h.HandleGetCategories)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Get("/:id/barcode", h.HandleGetBarcode)
	productRoutes.Get("/:id/qrcode", h.HandleGetQRCode)
}

// formValue reads a form field and reports whether it was present in the
// write at all. Presence matters: an absent quantity leaves the stored stock
// status untouched, an absent field keeps its value.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	if c.Request().PostArgs().Has(key) {
		return string(c.Request().PostArgs().Peek(key)), true
	}
	return "", false
}

func parsePurchaseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("purchase_date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

// validationErrorMap turns validator errors into the field->message map the
// frontend renders next to each input.
func validationErrorMap(err error) map[string]string {
	out := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			out[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return out
}

// saveUpload stores an uploaded image under a server-assigned filename and
// returns that filename.
func (h *ProductHandler) saveUpload(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("image exceeds the 5MB size limit")
	}
	if ct := file.Header.Get("Content-Type"); !imageMimeTypes[ct] {
		return "", fmt.Errorf("unsupported image type %q", ct)
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, name)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return name, nil
}

// HandleGetProducts returns a filtered, paginated product listing.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		StockStatus: c.Query("stock_status"),
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", 10),
	}

	page, err := h.service.ListProducts(filter)
	if err != nil {
		h.log.WithError(err).Error("failed to list products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetProductByID returns a single product with its vendor resolved.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		h.log.WithError(err).Error("failed to get product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a multipart form submission
// with an optional image file.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var p models.Product

	if v, ok := formValue(c, "product_name"); ok {
		p.ProductName = strings.TrimSpace(v)
	}
	if v, ok := formValue(c, "product_category"); ok {
		p.ProductCategory = strings.TrimSpace(v)
	}
	if v, ok := formValue(c, "product_description"); ok {
		p.ProductDescription = strings.TrimSpace(v)
	}
	if v, ok := formValue(c, "vendor_reference"); ok {
		p.VendorID = strings.TrimSpace(v)
	}

	if v, ok := formValue(c, "product_price"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_price must be a number")
		}
		p.ProductPrice = f
	}
	if v, ok := formValue(c, "product_tax"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_tax must be a number")
		}
		p.ProductTax = f
	}
	if v, ok := formValue(c, "product_discount"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_discount must be a number")
		}
		p.ProductDiscount = f
	}
	if v, ok := formValue(c, "product_qty"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "product_qty must be an integer")
		}
		p.ProductQty = n
	}
	if v, ok := formValue(c, "purchase_date"); ok {
		t, err := parsePurchaseDate(v)
		if err != nil {
			return badRequest(c, err.Error())
		}
		p.PurchaseDate = t
	}

	if err := h.validate.Struct(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if file, err := c.FormFile("product_image"); err == nil {
		name, err := h.saveUpload(c, file)
		if err != nil {
			return badRequest(c, err.Error())
		}
		p.ProductImage = name
	}

	created, err := h.service.CreateProduct(&p)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return badRequest(c, "vendor_reference does not match an existing vendor")
		}
		h.log.WithError(err).Error("failed to create product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct applies a partial update: only the form fields present
// in the request are written, and derived fields are recomputed from them.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	patch := &models.ProductPatch{}

	if v, ok := formValue(c, "product_name"); ok {
		trimmed := strings.TrimSpace(v)
		patch.ProductName = &trimmed
	}
	if v, ok := formValue(c, "product_category"); ok {
		trimmed := strings.TrimSpace(v)
		patch.ProductCategory = &trimmed
	}
	if v, ok := formValue(c, "product_description"); ok {
		trimmed := strings.TrimSpace(v)
		patch.ProductDescription = &trimmed
	}
	if v, ok := formValue(c, "vendor_reference"); ok {
		trimmed := strings.TrimSpace(v)
		patch.VendorID = &trimmed
	}

	if v, ok := formValue(c, "product_price"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_price must be a number")
		}
		patch.ProductPrice = &f
	}
	if v, ok := formValue(c, "product_tax"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_tax must be a number")
		}
		patch.ProductTax = &f
	}
	if v, ok := formValue(c, "product_discount"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "product_discount must be a number")
		}
		patch.ProductDiscount = &f
	}
	if v, ok := formValue(c, "product_qty"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "product_qty must be an integer")
		}
		patch.ProductQty = &n
	}
	if v, ok := formValue(c, "purchase_date"); ok {
		t, err := parsePurchaseDate(v)
		if err != nil {
			return badRequest(c, err.Error())
		}
		patch.PurchaseDate = &t
	}

	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	// A newly uploaded image replaces the stored filename.
	if file, err := c.FormFile("product_image"); err == nil {
		name, err := h.saveUpload(c, file)
		if err != nil {
			return badRequest(c, err.Error())
		}
		patch.ProductImage = &name
	}

	updated, err := h.service.UpdateProduct(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return badRequest(c, "vendor_reference does not match an existing vendor")
		}
		h.log.WithError(err).Error("failed to update product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleDeleteProduct removes a product unconditionally.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		h.log.WithError(err).Error("failed to delete product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}

// HandleGetCategories returns the distinct category names.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories()
	if err != nil {
		h.log.WithError(err).Error("failed to list categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetBarcode streams the product's Code 128 barcode as a PNG.
func (h *ProductHandler) HandleGetBarcode(c *fiber.Ctx) error {
	img, err := h.service.Barcode(c.Params("id"))
	if err != nil {
		return h.imageError(c, err, "barcode")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}

// HandleGetQRCode streams the product's QR code as a PNG.
func (h *ProductHandler) HandleGetQRCode(c *fiber.Ctx) error {
	img, err := h.service.QRCode(c.Params("id"))
	if err != nil {
		return h.imageError(c, err, "QR code")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}

func (h *ProductHandler) imageError(c *fiber.Ctx, err error, kind string) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	if errors.Is(err, barcode.ErrGenerationFailed) {
		h.log.WithError(err).Errorf("failed to generate %s", kind)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fmt.Sprintf("Could not generate %s", kind),
			"error":   err.Error(),
		})
	}
	h.log.WithError(err).Errorf("failed to load product for %s", kind)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("Could not generate %s", kind),
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}
