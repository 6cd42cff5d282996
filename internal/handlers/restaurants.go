package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/service"
)

type addressResponse struct {
	Street string  `json:"street"`
	City   string  `json:"city"`
	Zip    string  `json:"zip"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type restaurantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   addressResponse `json:"address"`
	RegNo     string          `json:"regNo"`
	AccountNo string          `json:"accountNo"`
}

type customerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func toRestaurantResponse(r models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Address: addressResponse{
			Street: r.Address.Street,
			City:   r.Address.City,
			Zip:    r.Address.Zip,
			X:      r.Address.X,
			Y:      r.Address.Y,
		},
		RegNo:     r.RegNo,
		AccountNo: r.AccountNo,
	}
}

func toCustomerResponse(c models.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}

func (h HandlerSet) GetRestaurant(c *gin.Context) {
	restaurant, err := h.profiles.Restaurant(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		h.internalError(c, err, "get restaurant failed")
		return
	}

	c.JSON(http.StatusOK, toRestaurantResponse(restaurant))
}

func (h HandlerSet) ListRestaurants(c *gin.Context) {
	zip := c.Query("zip")
	if zip == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "zip is required"})
		return
	}

	restaurants, err := h.profiles.RestaurantsByZip(c.Request.Context(), zip)
	if err != nil {
		h.internalError(c, err, "list restaurants failed")
		return
	}

	resp := make([]restaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		resp = append(resp, toRestaurantResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": resp})
}

func (h HandlerSet) GetCustomerAndRestaurant(c *gin.Context) {
	customerID := c.Query("customerId")
	restaurantID := c.Query("restaurantId")
	if customerID == "" || restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customerId and restaurantId are required"})
		return
	}

	result, err := h.profiles.CustomerAndRestaurant(c.Request.Context(), customerID, restaurantID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		case errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		default:
			h.internalError(c, err, "get customer and restaurant failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":   toCustomerResponse(result.Customer),
		"restaurant": toRestaurantResponse(result.Restaurant),
	})
}
