// Package access contiene el modelo de autorización por rutas: qué roles pueden
// alcanzar cada recurso y la decisión (permitir o redirigir) para una identidad.
//
// Es lógica pura: no conoce la base de datos ni HTTP. La resolución de roles
// contra el store vive en application/access.
package access

import (
	"sort"
	"strings"

	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// Páginas de destino de las redirecciones.
const (
	LoginPath   = "/login"
	NoRolePath  = "/no-role"
	DefaultPath = "/dashboard"
)

// RoleSet conjunto de roles reconocidos de una identidad.
// Los roles desconocidos se descartan al construirlo.
type RoleSet map[entity.RoleName]struct{}

// NewRoleSet construye el conjunto a partir de nombres conocidos.
func NewRoleSet(names ...entity.RoleName) RoleSet {
	s := make(RoleSet, len(names))
	for _, n := range names {
		if n.Known() {
			s[n] = struct{}{}
		}
	}
	return s
}

// RoleSetFrom construye el conjunto a partir de los roles leídos del store.
func RoleSetFrom(roles []entity.Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		if k := r.Kind(); k.Known() {
			s[k] = struct{}{}
		}
	}
	return s
}

// Has informa si el conjunto contiene el rol.
func (s RoleSet) Has(r entity.RoleName) bool {
	_, ok := s[r]
	return ok
}

// HasAny informa si el conjunto contiene al menos uno de los roles.
func (s RoleSet) HasAny(roles ...entity.RoleName) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Empty informa si la identidad no tiene ningún rol reconocido.
func (s RoleSet) Empty() bool { return len(s) == 0 }

// Names devuelve los nombres ordenados (para respuestas y logs).
func (s RoleSet) Names() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r.String())
	}
	sort.Strings(out)
	return out
}

// Policy tabla estática recurso → roles permitidos, más el conjunto de rutas públicas.
//
// Las claves terminadas en "/*" gobiernan el prefijo (incluida la ruta sin barra final);
// el resto se compara de forma exacta. La coincidencia exacta gana a la de prefijo y,
// entre prefijos, gana el más largo. Una regla por método (GovernMethod) gana a todas
// las anteriores para ese método.
type Policy struct {
	public  map[string]struct{}
	exact   map[string][]entity.RoleName
	prefix  map[string][]entity.RoleName
	methods map[string][]entity.RoleName // key: "METHOD /ruta"
}

// NewPolicy construye una política vacía con las rutas públicas indicadas.
func NewPolicy(public ...string) *Policy {
	p := &Policy{
		public:  make(map[string]struct{}, len(public)),
		exact:   make(map[string][]entity.RoleName),
		prefix:  make(map[string][]entity.RoleName),
		methods: make(map[string][]entity.RoleName),
	}
	for _, r := range public {
		p.public[r] = struct{}{}
	}
	return p
}

// Govern registra los roles permitidos para un recurso. Ignora llamadas sin roles:
// un recurso gobernado siempre tiene un conjunto no vacío.
func (p *Policy) Govern(resource string, roles ...entity.RoleName) *Policy {
	if len(roles) == 0 {
		return p
	}
	if strings.HasSuffix(resource, "/*") {
		p.prefix[strings.TrimSuffix(resource, "/*")] = roles
		return p
	}
	p.exact[resource] = roles
	return p
}

// GovernMethod restringe un recurso exacto para un método HTTP concreto.
// Las demás peticiones al recurso siguen la regla general de Govern.
func (p *Policy) GovernMethod(method, resource string, roles ...entity.RoleName) *Policy {
	if len(roles) == 0 || method == "" {
		return p
	}
	p.methods[methodKey(method, resource)] = roles
	return p
}

func methodKey(method, resource string) string {
	return strings.ToUpper(method) + " " + resource
}

// IsPublic informa si el recurso no requiere autenticación.
func (p *Policy) IsPublic(resource string) bool {
	_, ok := p.public[resource]
	return ok
}

// AllowedRoles devuelve los roles permitidos y si el recurso está gobernado.
func (p *Policy) AllowedRoles(resource string) ([]entity.RoleName, bool) {
	if roles, ok := p.exact[resource]; ok {
		return roles, true
	}
	best := ""
	var bestRoles []entity.RoleName
	for pre, roles := range p.prefix {
		if resource != pre && !strings.HasPrefix(resource, pre+"/") {
			continue
		}
		if len(pre) > len(best) {
			best, bestRoles = pre, roles
		}
	}
	if bestRoles != nil {
		return bestRoles, true
	}
	return nil, false
}

// AllowedRolesFor como AllowedRoles, aplicando antes la regla del método si existe.
// method vacío equivale a no tener reglas por método.
func (p *Policy) AllowedRolesFor(method, resource string) ([]entity.RoleName, bool) {
	if method != "" {
		if roles, ok := p.methods[methodKey(method, resource)]; ok {
			return roles, true
		}
	}
	return p.AllowedRoles(resource)
}

// GovernedPages rutas exactas gobernadas, ordenadas (navegación de la UI).
func (p *Policy) GovernedPages() []string {
	out := make([]string, 0, len(p.exact))
	for r := range p.exact {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// DefaultPolicy tabla de acceso de la aplicación.
func DefaultPolicy() *Policy {
	return NewPolicy(LoginPath, "/register", "/logout").
		Govern("/", entity.RoleAdmin, entity.RoleRegistrador, entity.RoleCaja).
		Govern(DefaultPath, entity.RoleAdmin, entity.RoleRegistrador, entity.RoleCaja).
		Govern("/admin", entity.RoleAdmin).
		Govern("/register-invoice", entity.RoleAdmin, entity.RoleRegistrador).
		Govern("/pos", entity.RoleAdmin, entity.RoleCaja, entity.RoleRegistrador).
		// API JSON: mismas reglas que las pantallas que la consumen.
		Govern("/api/users/*", entity.RoleAdmin).
		Govern("/api/roles/*", entity.RoleAdmin).
		Govern("/api/invoices/*", entity.RoleAdmin, entity.RoleRegistrador, entity.RoleCaja).
		GovernMethod("POST", "/api/invoices", entity.RoleAdmin, entity.RoleRegistrador).
		Govern("/api/extract-invoice", entity.RoleAdmin, entity.RoleRegistrador)
}
