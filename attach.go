package fsm

import (
	"fmt"
	"reflect"
	"strings"
)

// Attacher is implemented by hosts that want to receive their machine
// explicitly instead of having a field set.
type Attacher interface {
	AttachMachine(m *Machine)
}

var machineType = reflect.TypeOf((*Machine)(nil))

// Attach sets m on target. In normal mode target must embed *Machine so the
// machine's methods are promoted onto the host. In safe mode the machine is
// stored in the *Machine field named alias (or tagged `fsm:"alias"`), which
// keeps the host's own method set free of collisions.
func Attach(target any, safe bool, alias string, m *Machine) error {
	return attach(target, safe, alias, m)
}

func attach(target any, safe bool, alias string, m *Machine) error {
	if a, ok := target.(Attacher); ok {
		a.AttachMachine(m)
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", ErrInvalidTarget, target)
	}
	v = v.Elem()

	if alias == "" {
		alias = DefaultAlias
	}

	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != machineType || !f.IsExported() {
			continue
		}
		if safe {
			if f.Tag.Get("fsm") != alias && !strings.EqualFold(f.Name, alias) {
				continue
			}
		} else if !f.Anonymous {
			continue
		}
		v.Field(i).Set(reflect.ValueOf(m))
		m.logger.Debug("machine attached", "target", typ.String(), "field", f.Name)
		return nil
	}

	if safe {
		return fmt.Errorf("%w: %s has no *fsm.Machine field %q", ErrInvalidTarget, typ, alias)
	}
	return fmt.Errorf("%w: %s does not embed *fsm.Machine", ErrInvalidTarget, typ)
}
