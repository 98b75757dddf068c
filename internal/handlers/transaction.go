package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/pipeline"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
	"real-estate-backend/internal/storage"
)

// TransactionHandler handles sale and rental endpoints. Creation comes in as
// multipart form data because the contract image rides along with the fields.
type TransactionHandler struct {
	createSale   *pipeline.Pipeline[commands.CreateSaleCommand, string]
	createRental *pipeline.Pipeline[commands.CreateRentalCommand, string]
	getSale      *pipeline.Pipeline[commands.GetSaleQuery, *models.Sale]
	listSales    *pipeline.Pipeline[commands.ListSalesQuery, *repository.PagedResult[models.Sale]]
	getRental    *pipeline.Pipeline[commands.GetRentalQuery, *models.Rental]
	listRentals  *pipeline.Pipeline[commands.ListRentalsQuery, *repository.PagedResult[models.Rental]]
}

func NewTransactionHandler(db *database.GormDB, files storage.ContractStore) *TransactionHandler {
	return &TransactionHandler{
		createSale:   pipeline.New(&commands.CreateSaleValidator{}, commands.NewCreateSaleHandler(db, files)),
		createRental: pipeline.New(&commands.CreateRentalValidator{}, commands.NewCreateRentalHandler(db, files)),
		getSale:      pipeline.New[commands.GetSaleQuery, *models.Sale](nil, commands.NewGetSaleHandler(db)),
		listSales:    pipeline.New[commands.ListSalesQuery, *repository.PagedResult[models.Sale]](nil, commands.NewListSalesHandler(db)),
		getRental:    pipeline.New[commands.GetRentalQuery, *models.Rental](nil, commands.NewGetRentalHandler(db)),
		listRentals:  pipeline.New[commands.ListRentalsQuery, *repository.PagedResult[models.Rental]](nil, commands.NewListRentalsHandler(db)),
	}
}

// readContract pulls the uploaded contract image out of the multipart form.
func readContract(c *gin.Context) (string, []byte, bool) {
	fileHeader, err := c.FormFile("contract")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []*result.Error{
			result.ValidationError("ContractRequired", "contract", "contract image is required"),
		}})
		return "", nil, false
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []*result.Error{
			result.ValidationError("ContractUnreadable", "contract", "contract image could not be read"),
		}})
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseDate accepts a plain date or a full timestamp.
func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// The form* helpers parse typed form fields and collect a validation error on
// malformed input. An absent field stays zero so the structural validator
// reports it as required rather than malformed.

func formFloat(c *gin.Context, field string, errs *[]*result.Error) float64 {
	raw := c.PostForm(field)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, result.ValidationError("MalformedValue", field, field+" is not a valid number"))
		return 0
	}
	return v
}

func formInt(c *gin.Context, field string, errs *[]*result.Error) int {
	raw := c.PostForm(field)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, result.ValidationError("MalformedValue", field, field+" is not a valid integer"))
		return 0
	}
	return v
}

func formDate(c *gin.Context, field string, errs *[]*result.Error) time.Time {
	raw := c.PostForm(field)
	if raw == "" {
		return time.Time{}
	}
	t, ok := parseDate(raw)
	if !ok {
		*errs = append(*errs, result.ValidationError("MalformedValue", field, field+" is not a valid date"))
		return time.Time{}
	}
	return t
}

// CreateSale sells a property to a buyer
func (h *TransactionHandler) CreateSale(c *gin.Context) {
	name, data, ok := readContract(c)
	if !ok {
		return
	}

	var parseErrs []*result.Error
	price := formFloat(c, "price", &parseErrs)
	saleDate := formDate(c, "sale_date", &parseErrs)
	if len(parseErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": parseErrs})
		return
	}

	cmd := commands.CreateSaleCommand{
		PropertyID:    c.PostForm("property_id"),
		SellerID:      c.PostForm("seller_id"),
		BuyerID:       c.PostForm("buyer_id"),
		Price:         price,
		SaleDate:      saleDate,
		ContractName:  name,
		ContractImage: data,
	}
	respond(c, http.StatusCreated, h.createSale.Send(c.Request.Context(), cmd))
}

// CreateRental leases a property to a lessee
func (h *TransactionHandler) CreateRental(c *gin.Context) {
	name, data, ok := readContract(c)
	if !ok {
		return
	}

	var parseErrs []*result.Error
	rent := formFloat(c, "monthly_rent", &parseErrs)
	duration := formInt(c, "duration", &parseErrs)
	startDate := formDate(c, "start_date", &parseErrs)
	if len(parseErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": parseErrs})
		return
	}

	cmd := commands.CreateRentalCommand{
		PropertyID:    c.PostForm("property_id"),
		LesseeID:      c.PostForm("lessee_id"),
		MonthlyRent:   rent,
		StartDate:     startDate,
		Duration:      duration,
		RentType:      models.RentType(c.PostForm("rent_type")),
		ContractName:  name,
		ContractImage: data,
	}
	respond(c, http.StatusCreated, h.createRental.Send(c.Request.Context(), cmd))
}

// GetSale fetches one sale
func (h *TransactionHandler) GetSale(c *gin.Context) {
	respond(c, http.StatusOK, h.getSale.Send(c.Request.Context(), commands.GetSaleQuery{ID: c.Param("id")}))
}

// ListSales pages through sales
func (h *TransactionHandler) ListSales(c *gin.Context) {
	q := commands.ListSalesQuery{
		PropertyID: c.Query("property_id"),
		CustomerID: c.Query("customer_id"),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", repository.DefaultPageSize),
	}
	respond(c, http.StatusOK, h.listSales.Send(c.Request.Context(), q))
}

// GetRental fetches one rental
func (h *TransactionHandler) GetRental(c *gin.Context) {
	respond(c, http.StatusOK, h.getRental.Send(c.Request.Context(), commands.GetRentalQuery{ID: c.Param("id")}))
}

// ListRentals pages through rentals
func (h *TransactionHandler) ListRentals(c *gin.Context) {
	q := commands.ListRentalsQuery{
		PropertyID: c.Query("property_id"),
		CustomerID: c.Query("customer_id"),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", repository.DefaultPageSize),
	}
	respond(c, http.StatusOK, h.listRentals.Send(c.Request.Context(), q))
}
