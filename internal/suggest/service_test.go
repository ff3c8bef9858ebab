package suggest

import "testing"

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		addr nominatimAddress
		want string
		ok   bool
	}{
		{
			name: "full address",
			addr: nominatimAddress{
				HouseNumber: "123", Road: "Main Street",
				City: "Austin", State: "Texas", Postcode: "78701",
			},
			want: "123 Main Street, Austin, Texas 78701",
			ok:   true,
		},
		{
			name: "no house number",
			addr: nominatimAddress{
				Road: "Main Street", City: "Austin", State: "Texas",
			},
			want: "Main Street, Austin, Texas",
			ok:   true,
		},
		{
			name: "town fallback",
			addr: nominatimAddress{
				HouseNumber: "7", Road: "Oak Lane",
				Town: "Fredericksburg", State: "Texas", Postcode: "78624",
			},
			want: "7 Oak Lane, Fredericksburg, Texas 78624",
			ok:   true,
		},
		{
			name: "village fallback",
			addr: nominatimAddress{
				Road: "Elm Road", Village: "Round Top", State: "Texas",
			},
			want: "Elm Road, Round Top, Texas",
			ok:   true,
		},
		{
			name: "postcode without state",
			addr: nominatimAddress{
				HouseNumber: "9", Road: "Pine Street",
				City: "Austin", Postcode: "78701",
			},
			want: "9 Pine Street, Austin, 78701",
			ok:   true,
		},
		{
			name: "missing road dropped",
			addr: nominatimAddress{City: "Austin", State: "Texas"},
			ok:   false,
		},
		{
			name: "missing city dropped",
			addr: nominatimAddress{HouseNumber: "1", Road: "Main Street", State: "Texas"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatAddress(tt.addr)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("formatAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPickCityPrecedence(t *testing.T) {
	addr := nominatimAddress{City: "Austin", Town: "Fredericksburg", Village: "Round Top"}
	if got := pickCity(addr); got != "Austin" {
		t.Errorf("pickCity = %q, want Austin", got)
	}

	addr.City = ""
	if got := pickCity(addr); got != "Fredericksburg" {
		t.Errorf("pickCity = %q, want Fredericksburg", got)
	}

	addr.Town = ""
	if got := pickCity(addr); got != "Round Top" {
		t.Errorf("pickCity = %q, want Round Top", got)
	}
}
