package access

// Decision resultado de autorizar una identidad sobre un recurso.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToNoRole
	RedirectToDefault
)

// String nombre estable de la decisión (logs y respuestas JSON).
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToNoRole:
		return "redirect_no_role"
	case RedirectToDefault:
		return "redirect_default"
	default:
		return "unknown"
	}
}

// Location ruta a la que redirigir; vacío para Allow.
func (d Decision) Location() string {
	switch d {
	case RedirectToLogin:
		return LoginPath
	case RedirectToNoRole:
		return NoRolePath
	case RedirectToDefault:
		return DefaultPath
	default:
		return ""
	}
}

// Decide aplica el orden fijo de evaluación:
//  1. recurso público → Allow
//  2. sin identidad → RedirectToLogin
//  3. roles (resueltos por el llamador y recibidos aquí)
//  4. recurso no gobernado → Allow (solo requiere autenticación)
//  5. intersección no vacía con los roles permitidos → Allow
//  6. sin ningún rol → RedirectToNoRole
//  7. con roles insuficientes → RedirectToDefault
//
// resolve solo se invoca si se llega al paso 3, de modo que las rutas públicas
// y las peticiones anónimas no consultan el store.
func Decide(p *Policy, resource string, authenticated bool, resolve func() RoleSet) Decision {
	return DecideMethod(p, "", resource, authenticated, resolve)
}

// DecideMethod igual que Decide, usando además las reglas por método HTTP de la política.
func DecideMethod(p *Policy, method, resource string, authenticated bool, resolve func() RoleSet) Decision {
	if p.IsPublic(resource) {
		return Allow
	}
	if !authenticated {
		return RedirectToLogin
	}
	roles := resolve()
	allowed, governed := p.AllowedRolesFor(method, resource)
	if !governed {
		return Allow
	}
	if roles.HasAny(allowed...) {
		return Allow
	}
	if roles.Empty() {
		return RedirectToNoRole
	}
	return RedirectToDefault
}

// CanReach versión de Decide para la UI (mostrar u ocultar enlaces) con roles ya resueltos.
func CanReach(p *Policy, resource string, roles RoleSet) bool {
	return Decide(p, resource, true, func() RoleSet { return roles }) == Allow
}
