package commands

import (
	"fmt"
	"log"

	"ems/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{

	{
		Index:       1,
		Description: "CREATE TYPE \"employee_role\" AS ENUM",
		Query: `
        CREATE TYPE "employee_role" AS ENUM ('EMPLOYEE', 'ADMIN', 'DASHBOARD', 'SCANNER');`,
	},
	{
		Index:       2,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE IF NOT EXISTS employees (
            id serial primary key,
            employee_id text not null,
            password text not null,
            role employee_role,
            full_name text,
            email varchar(255),
            phone varchar(255),
            work_schedule jsonb,
            rfid_uid varchar(16),
            is_rfid_assigned boolean default false,
            state text default 'Active',
            created_at timestamp default now(),
            created_by int references employees(id),
            updated_at timestamp,
            updated_by int references employees(id),
            deleted_at timestamp,
            deleted_by int references employees(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO employees(employee_id, role, password)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM employees WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create scanner station with employee_id: Scanner01, password: 1",
		Query: `
        INSERT INTO employees(employee_id, role, password)
        SELECT 'Scanner01', 'SCANNER', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM employees WHERE employee_id = 'Scanner01');
        `,
	},
	{
		Index:       5,
		Description: "Create dashboard user with employee_id: Dashboard01, password: 1",
		Query: `
        INSERT INTO employees(employee_id, role, password)
        SELECT 'Dashboard01', 'DASHBOARD', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM employees WHERE employee_id = 'Dashboard01');
        `,
	},
	{
		Index:       6,
		Description: "Create table: department",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            created_at timestamp default now(),
            created_by int references employees(id),
            updated_at timestamp,
            updated_by int references employees(id),
            deleted_at timestamp,
            deleted_by int references employees(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: position.",
		Query: `
        CREATE TABLE IF NOT EXISTS position (
            id serial primary key,
            name text not null,
            department_id int references department(id),
            created_at timestamp default now(),
            created_by int references employees(id),
            updated_at timestamp,
            updated_by int references employees(id),
            deleted_at timestamp,
            deleted_by int references employees(id)
        );`,
	},
	{
		Index:       8,
		Description: "Alter table employees: department and position references",
		Query: `
        ALTER TABLE employees
        ADD COLUMN IF NOT EXISTS department_id int references department(id),
        ADD COLUMN IF NOT EXISTS position_id int references position(id),
        ADD COLUMN IF NOT EXISTS work_type varchar(30),
        ADD COLUMN IF NOT EXISTS photo text;`,
	},
	{
		Index:       9,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE attendance (
            id SERIAL PRIMARY KEY,
            employee_id VARCHAR NOT NULL,
            work_day DATE NOT NULL,
            time_in TIMESTAMP NOT NULL,
            time_out TIMESTAMP,
            status VARCHAR(20) NOT NULL,
            source VARCHAR(10) NOT NULL,
            hours_worked FLOAT,
            late_minutes INT DEFAULT 0,
            overtime_minutes INT DEFAULT 0,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES employees(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES employees(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES employees(id)
        );`,
	},
	{
		Index:       10,
		Description: "One attendance row per employee per day.",
		Query: `
        CREATE UNIQUE INDEX attendance_employee_day ON attendance (employee_id, work_day)
        WHERE deleted_at IS NULL;`,
	},
	{
		Index:       11,
		Description: "Create table: rfid_assignment.",
		Query: `
        CREATE TABLE rfid_assignment (
            id SERIAL PRIMARY KEY,
            uid VARCHAR(16) NOT NULL,
            employee_id VARCHAR NOT NULL,
            is_active BOOLEAN DEFAULT true,
            assigned_at TIMESTAMP NOT NULL,
            removed_at TIMESTAMP,
            removal_reason VARCHAR(30),
            other_reason TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES employees(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES employees(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES employees(id)
        );`,
	},
	{
		Index:       12,
		Description: "A badge holds one active binding, an employee holds one active badge.",
		Query: `
        CREATE UNIQUE INDEX rfid_active_uid ON rfid_assignment (uid) WHERE is_active;
        CREATE UNIQUE INDEX rfid_active_employee ON rfid_assignment (employee_id) WHERE is_active;`,
	},
	{
		Index:       13,
		Description: "Create table: leave.",
		Query: `
        CREATE TABLE leave (
            id SERIAL PRIMARY KEY,
            employee_id VARCHAR NOT NULL,
            start_date DATE NOT NULL,
            end_date DATE NOT NULL,
            reason TEXT,
            status VARCHAR(20) DEFAULT 'Pending',
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES employees(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES employees(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES employees(id)
        );`,
	},
	{
		Index:       14,
		Description: "Create table: ticket.",
		Query: `
        CREATE TABLE ticket (
            id SERIAL PRIMARY KEY,
            employee_id VARCHAR NOT NULL,
            subject TEXT NOT NULL,
            description TEXT,
            status VARCHAR(20) DEFAULT 'Open',
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES employees(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES employees(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES employees(id)
        );`,
	},
	{
		Index:       15,
		Description: "Create table: school_info.",
		Query: `
        CREATE TABLE school_info (
            id SERIAL PRIMARY KEY,
            school_name VARCHAR(250) NOT NULL,
            default_start TIME,
            default_end TIME,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES employees(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES employees(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES employees(id)
        );`,
	},
	{
		Index:       16,
		Description: "Insert data for table: school_info.",
		Query: `
        INSERT INTO school_info (
            id,
            school_name,
            default_start,
            default_end,
            created_by,
            updated_by
        ) VALUES (
            1,
            'Meridian International School',
            '07:00:00',
            '16:00:00',
            1,
            1
        );`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
