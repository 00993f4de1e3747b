package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/FacturaOCR/internal/domain/access"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

func roles(names ...entity.RoleName) func() access.RoleSet {
	return func() access.RoleSet { return access.NewRoleSet(names...) }
}

func TestDecide_Ejemplos(t *testing.T) {
	p := access.DefaultPolicy()

	tests := []struct {
		name          string
		resource      string
		authenticated bool
		roles         []entity.RoleName
		want          access.Decision
	}{
		{"sin roles en /admin", "/admin", true, nil, access.RedirectToNoRole},
		{"Caja en /admin", "/admin", true, []entity.RoleName{entity.RoleCaja}, access.RedirectToDefault},
		{"admin en /admin", "/admin", true, []entity.RoleName{entity.RoleAdmin}, access.Allow},
		{"anónimo en /register-invoice", "/register-invoice", false, nil, access.RedirectToLogin},
		{"anónimo en /login", "/login", false, nil, access.Allow},
		{"anónimo en /register", "/register", false, nil, access.Allow},
		{"Registrador en /register-invoice", "/register-invoice", true, []entity.RoleName{entity.RoleRegistrador}, access.Allow},
		{"Caja en /register-invoice", "/register-invoice", true, []entity.RoleName{entity.RoleCaja}, access.RedirectToDefault},
		{"Caja en /pos", "/pos", true, []entity.RoleName{entity.RoleCaja}, access.Allow},
		{"Caja en /dashboard", "/dashboard", true, []entity.RoleName{entity.RoleCaja}, access.Allow},
		{"ruta no gobernada con sesión", "/no-role", true, nil, access.Allow},
		{"ruta no gobernada sin sesión", "/no-role", false, nil, access.RedirectToLogin},
		{"home sin roles", "/", true, nil, access.RedirectToNoRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.Decide(p, tt.resource, tt.authenticated, roles(tt.roles...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideMethod_RegistroDeFacturas(t *testing.T) {
	p := access.DefaultPolicy()

	tests := []struct {
		name   string
		method string
		path   string
		roles  []entity.RoleName
		want   access.Decision
	}{
		{"Caja crea factura", "POST", "/api/invoices", []entity.RoleName{entity.RoleCaja}, access.RedirectToDefault},
		{"Caja lista facturas", "GET", "/api/invoices", []entity.RoleName{entity.RoleCaja}, access.Allow},
		{"Caja ve el resumen", "GET", "/api/invoices/summary", []entity.RoleName{entity.RoleCaja}, access.Allow},
		{"Registrador crea factura", "POST", "/api/invoices", []entity.RoleName{entity.RoleRegistrador}, access.Allow},
		{"admin crea factura", "post", "/api/invoices", []entity.RoleName{entity.RoleAdmin}, access.Allow},
		{"sin roles crea factura", "POST", "/api/invoices", nil, access.RedirectToNoRole},
		{"sin método usa la regla de la ruta", "", "/api/invoices", []entity.RoleName{entity.RoleCaja}, access.Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.DecideMethod(p, tt.method, tt.path, true, roles(tt.roles...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_GovernMethodSinRolesSeIgnora(t *testing.T) {
	p := access.NewPolicy().Govern("/x", entity.RoleCaja).GovernMethod("POST", "/x")
	got, governed := p.AllowedRolesFor("POST", "/x")
	assert.True(t, governed)
	assert.Equal(t, []entity.RoleName{entity.RoleCaja}, got)
}

func TestDecide_RutaPublicaNoResuelveRoles(t *testing.T) {
	called := false
	got := access.Decide(access.DefaultPolicy(), "/login", true, func() access.RoleSet {
		called = true
		return access.NewRoleSet()
	})
	assert.Equal(t, access.Allow, got)
	assert.False(t, called, "las rutas públicas no deben consultar roles")
}

func TestDecide_AnonimoNoResuelveRoles(t *testing.T) {
	called := false
	got := access.Decide(access.DefaultPolicy(), "/admin", false, func() access.RoleSet {
		called = true
		return access.NewRoleSet()
	})
	assert.Equal(t, access.RedirectToLogin, got)
	assert.False(t, called)
}

func TestDecide_Determinista(t *testing.T) {
	p := access.DefaultPolicy()
	first := access.Decide(p, "/admin", true, roles(entity.RoleCaja))
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, access.Decide(p, "/admin", true, roles(entity.RoleCaja)))
	}
}

func TestPolicy_Prefijos(t *testing.T) {
	p := access.DefaultPolicy()

	got, governed := p.AllowedRoles("/api/users/abc/roles")
	assert.True(t, governed)
	assert.Equal(t, []entity.RoleName{entity.RoleAdmin}, got)

	_, governed = p.AllowedRoles("/api/users")
	assert.True(t, governed, "el prefijo gobierna también la ruta sin barra final")

	_, governed = p.AllowedRoles("/api/usersx")
	assert.False(t, governed, "el prefijo solo coincide por segmentos")

	_, governed = p.AllowedRoles("/api/me")
	assert.False(t, governed)
}

func TestPolicy_PrefijoMasLargoGana(t *testing.T) {
	p := access.NewPolicy().
		Govern("/api/*", entity.RoleCaja).
		Govern("/api/admin/*", entity.RoleAdmin)

	got, _ := p.AllowedRoles("/api/admin/users")
	assert.Equal(t, []entity.RoleName{entity.RoleAdmin}, got)

	got, _ = p.AllowedRoles("/api/other")
	assert.Equal(t, []entity.RoleName{entity.RoleCaja}, got)
}

func TestPolicy_GovernSinRolesSeIgnora(t *testing.T) {
	p := access.NewPolicy().Govern("/x")
	_, governed := p.AllowedRoles("/x")
	assert.False(t, governed)
}

func TestRoleSetFrom_IgnoraRolesDesconocidos(t *testing.T) {
	set := access.RoleSetFrom([]entity.Role{
		{ID: "1", Name: "admin"},
		{ID: "2", Name: "Supervisor"},
		{ID: "3", Name: "caja"}, // distinto de "Caja"
	})
	assert.True(t, set.Has(entity.RoleAdmin))
	assert.False(t, set.Has(entity.RoleCaja))
	assert.Equal(t, []string{"admin"}, set.Names())
}

func TestDecide_SoloRolesDesconocidosEsSinRol(t *testing.T) {
	set := access.RoleSetFrom([]entity.Role{{ID: "9", Name: "Supervisor"}})
	got := access.Decide(access.DefaultPolicy(), "/admin", true, func() access.RoleSet { return set })
	assert.Equal(t, access.RedirectToNoRole, got)
}

func TestCanReach(t *testing.T) {
	p := access.DefaultPolicy()
	caja := access.NewRoleSet(entity.RoleCaja)
	assert.True(t, access.CanReach(p, "/pos", caja))
	assert.False(t, access.CanReach(p, "/admin", caja))
	assert.False(t, access.CanReach(p, "/register-invoice", caja))
}

func TestDecision_Location(t *testing.T) {
	assert.Equal(t, "", access.Allow.Location())
	assert.Equal(t, "/login", access.RedirectToLogin.Location())
	assert.Equal(t, "/no-role", access.RedirectToNoRole.Location())
	assert.Equal(t, "/dashboard", access.RedirectToDefault.Location())
	assert.Equal(t, "redirect_default", access.RedirectToDefault.String())
}

func TestParseRoleName(t *testing.T) {
	assert.Equal(t, entity.RoleAdmin, entity.ParseRoleName("admin"))
	assert.Equal(t, entity.RoleCaja, entity.ParseRoleName("Caja"))
	assert.Equal(t, entity.RoleRegistrador, entity.ParseRoleName("Registrador"))
	assert.Equal(t, entity.RoleUnrecognized, entity.ParseRoleName("Admin"))
	assert.False(t, entity.RoleUnrecognized.Known())
	assert.Equal(t, "Caja", entity.RoleCaja.String())
}
