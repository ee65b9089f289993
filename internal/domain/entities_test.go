package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

func TestRenterProfile_Verify(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		p := &RenterProfile{DriverLicenseImage: ptr.Ptr("dl.png"), PhotoIDImage: ptr.Ptr("id.png")}
		require.NoError(t, p.Verify(now))
		assert.True(t, p.IsVerified)
		require.NotNil(t, p.VerifiedAt)
		assert.True(t, p.VerifiedAt.Equal(now))
	})

	t.Run("Keeps previous VerifiedAt", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		p := &RenterProfile{DriverLicenseImage: ptr.Ptr("dl.png"), PhotoIDImage: ptr.Ptr("id.png"), VerifiedAt: &earlier}
		require.NoError(t, p.Verify(now))
		assert.True(t, p.VerifiedAt.Equal(earlier))
	})

	t.Run("Missing documents", func(t *testing.T) {
		p := &RenterProfile{DriverLicenseImage: ptr.Ptr("dl.png")}
		assert.ErrorIs(t, p.Verify(now), ErrMissingDocuments)
		assert.False(t, p.IsVerified)
	})

	t.Run("Already verified", func(t *testing.T) {
		p := &RenterProfile{IsVerified: true}
		assert.ErrorIs(t, p.Verify(now), ErrAlreadyVerified)
	})
}

func TestResource_Validate(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	car := func() *Resource {
		return &Resource{
			Kind: KindCar,
			Rate: decimal.NewFromInt(50),
			Car:  &CarDetails{Make: "Toyota", Model: "Corolla", Year: 2020},
		}
	}
	parking := func() *Resource {
		return &Resource{
			Kind:    KindParking,
			Rate:    decimal.NewFromInt(4),
			Parking: &ParkingDetails{Name: "P1", Address: "Main st. 1"},
		}
	}

	assert.NoError(t, car().Validate(now))
	assert.NoError(t, parking().Validate(now))

	r := car()
	r.Rate = decimal.Zero
	assert.ErrorIs(t, r.Validate(now), ErrInvalidResource)

	r = car()
	r.Car.Year = 2030
	assert.ErrorIs(t, r.Validate(now), ErrInvalidResource)

	r = car()
	r.Parking = &ParkingDetails{Name: "x", Address: "y"}
	assert.ErrorIs(t, r.Validate(now), ErrInvalidResource)

	r = parking()
	r.Parking.Address = " "
	assert.ErrorIs(t, r.Validate(now), ErrInvalidResource)

	r = parking()
	r.Kind = "boat"
	assert.ErrorIs(t, r.Validate(now), ErrInvalidResourceKind)
}

func TestBookingRef_Resolve(t *testing.T) {
	id, kind, err := BookingRef{CarBookingID: ptr.Ptr(int64(7))}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, KindCar, kind)

	id, kind, err = BookingRef{ParkingBookingID: ptr.Ptr(int64(9))}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, KindParking, kind)

	_, _, err = BookingRef{}.Resolve()
	assert.ErrorIs(t, err, ErrInvalidBookingReference)

	_, _, err = BookingRef{CarBookingID: ptr.Ptr(int64(1)), ParkingBookingID: ptr.Ptr(int64(2))}.Resolve()
	assert.ErrorIs(t, err, ErrInvalidBookingReference)
}

func TestInsurancePolicy_Validate(t *testing.T) {
	p := &InsurancePolicy{PolicyNumber: "POL-1", ProviderName: "Acme", Premium: decimal.NewFromInt(10)}
	assert.NoError(t, p.Validate())

	p.PolicyNumber = ""
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)

	p.PolicyNumber = "POL-1"
	p.Premium = decimal.NewFromInt(-1)
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
}
