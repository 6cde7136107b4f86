package handlers

import (
	"errors"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// VendorHandler handles HTTP requests for vendors.
type VendorHandler struct {
	service  *services.VendorService
	validate *validator.Validate
	log      *logrus.Logger
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(service *services.VendorService, log *logrus.Logger) *VendorHandler {
	return &VendorHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the vendor routes with the Fiber app.
func (h *VendorHandler) RegisterRoutes(router fiber.Router) {
	vendorRoutes := router.Group("/vendors")
	vendorRoutes.Get("/", h.HandleGetVendors)
	vendorRoutes.Get("/:id", h.HandleGetVendorByID)
	vendorRoutes.Post("/", h.HandleCreateVendor)
	vendorRoutes.Put("/:id", h.HandleUpdateVendor)
	vendorRoutes.Delete("/:id", h.HandleDeleteVendor)
}

// HandleGetVendors retrieves all vendors sorted by name.
func (h *VendorHandler) HandleGetVendors(c *fiber.Ctx) error {
	vendors, err := h.service.GetAllVendors()
	if err != nil {
		h.log.WithError(err).Error("failed to list vendors")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve vendors",
			"error":   err.Error(),
		})
	}
	return c.JSON(vendors)
}

// HandleGetVendorByID retrieves a single vendor by its ID.
func (h *VendorHandler) HandleGetVendorByID(c *fiber.Ctx) error {
	vendor, err := h.service.GetVendorByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Vendor not found",
			})
		}
		h.log.WithError(err).Error("failed to get vendor")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(vendor)
}

// HandleCreateVendor creates a new vendor from a JSON body. All contact
// fields are required after trimming.
func (h *VendorHandler) HandleCreateVendor(c *fiber.Ctx) error {
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	vendor.ID = "" // IDs are server-assigned
	vendor.Normalize()
	if err := h.validate.Struct(&vendor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateVendor(&vendor); err != nil {
		h.log.WithError(err).Error("failed to create vendor")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create vendor",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// HandleUpdateVendor updates an existing vendor in place.
func (h *VendorHandler) HandleUpdateVendor(c *fiber.Ctx) error {
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	vendor.Normalize()
	if err := h.validate.Struct(&vendor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	updated, err := h.service.UpdateVendor(c.Params("id"), &vendor)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Vendor not found",
			})
		}
		h.log.WithError(err).Error("failed to update vendor")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleDeleteVendor removes a vendor unless products still reference it.
func (h *VendorHandler) HandleDeleteVendor(c *fiber.Ctx) error {
	if err := h.service.DeleteVendor(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Vendor not found",
			})
		}
		if errors.Is(err, services.ErrVendorHasProducts) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot delete vendor with associated products",
			})
		}
		h.log.WithError(err).Error("failed to delete vendor")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Vendor removed"})
}
