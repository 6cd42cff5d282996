package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/service"
)

type registerCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

func (h HandlerSet) RegisterCustomer(c *gin.Context) {
	var req registerCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	customer, err := h.auth.RegisterCustomer(c.Request.Context(), service.RegisterCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "A customer with this email already exists"})
			return
		}
		h.internalError(c, err, "register customer failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Customer registered successfully",
		"customerId": customer.ID,
	})
}

type addressRequest struct {
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	Zip    string `json:"zip" binding:"required"`
}

type registerRestaurantRequest struct {
	Name      string         `json:"name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Phone     string         `json:"phone" binding:"required"`
	Password  string         `json:"password" binding:"required"`
	Address   addressRequest `json:"address"`
	RegNo     string         `json:"regNo" binding:"required"`
	AccountNo string         `json:"accountNo" binding:"required"`
}

func (h HandlerSet) RegisterRestaurant(c *gin.Context) {
	var req registerRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	restaurant, err := h.auth.RegisterRestaurant(c.Request.Context(), service.RegisterRestaurantInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address: models.Address{
			Street: req.Address.Street,
			City:   req.Address.City,
			Zip:    req.Address.Zip,
		},
		RegNo:     req.RegNo,
		AccountNo: req.AccountNo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotResolved):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error getting coordinates. Please provide a valid address"})
		case errors.Is(err, service.ErrRestaurantExists):
			c.JSON(http.StatusConflict, gin.H{"message": "A restaurant with this email already exists"})
		default:
			h.internalError(c, err, "register restaurant failed")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Restaurant registered successfully",
		"restaurantId": restaurant.ID,
	})
}
