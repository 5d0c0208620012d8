package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog and settings if the DB is empty (idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT DEFAULT '',
  image_url TEXT DEFAULT '',
  order_index INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(order_index);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  sku TEXT NOT NULL UNIQUE,
  description TEXT DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  mrp NUMERIC NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  images_json TEXT DEFAULT '[]',
  tags_json TEXT DEFAULT '[]',
  difficulty TEXT DEFAULT '',
  bom_json TEXT DEFAULT '[]',
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_featured   ON products(is_featured);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Courses
CREATE TABLE IF NOT EXISTS courses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT DEFAULT '',
  duration TEXT DEFAULT '',
  category TEXT DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  mrp NUMERIC NOT NULL DEFAULT 0,
  syllabus_json TEXT DEFAULT '[]',
  image_url TEXT DEFAULT '',
  is_featured INTEGER NOT NULL DEFAULT 0,
  order_index INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_courses_order ON courses(order_index);

-- Orders (items are a frozen JSON snapshot, never joined live)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT DEFAULT '',
  shipping_address TEXT NOT NULL,
  items_json TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  shipping_fee NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT DEFAULT '',
  whatsapp_message TEXT DEFAULT '',
  user_id TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_number     ON orders(order_number);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Saved addresses (prefill checkout for logged-in users)
CREATE TABLE IF NOT EXISTS user_addresses(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  label TEXT NOT NULL,
  address TEXT NOT NULL,
  phone TEXT NOT NULL,
  pincode TEXT NOT NULL,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_user_addresses_user ON user_addresses(user_id);

-- Settings (flat key/value: store name, contact, whatsapp number, ...)
CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT ''
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS user_roles(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  role TEXT NOT NULL CHECK (role IN ('admin','staff','customer'))
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Carts (server-side stand-in for the browser's local storage)
CREATE TABLE IF NOT EXISTS cart_items(
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  image TEXT DEFAULT '',
  updated_at TEXT,
  PRIMARY KEY (session_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/courses/settings")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,slug,description,order_index) VALUES
	  ('cat-robotics','Robotics','robotics','Robots, chassis and controllers',1),
	  ('cat-sensors','Sensors','sensors','Sensing modules for every project',2),
	  ('cat-kits','DIY Kits','diy-kits','Complete build-it-yourself kits',3)`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,slug,sku,description,price,mrp,stock,images_json,tags_json,difficulty,bom_json,is_featured) VALUES
	  ('prd-linebot','cat-robotics','Line Follower Robot Kit','line-follower-robot-kit','SKU-LFR01',
	   'Arduino-based line follower with IR sensor array','1499','1999',12,
	   '["products/linebot/main.jpg"]','["kit","arduino"]','beginner',
	   '[{"part":"Arduino Uno","qty":1,"sku":"SKU-UNO"},{"part":"IR sensor pair","qty":3},{"part":"Chassis","qty":1}]',1),
	  ('prd-ultra','cat-sensors','Ultrasonic Distance Sensor','ultrasonic-distance-sensor','SKU-HC04',
	   'HC-SR04 module, 2cm-400cm range','89','120',40,
	   '["products/ultra/main.jpg"]','["sensor"]','', '[]',1),
	  ('prd-armkit','cat-kits','4-DOF Robotic Arm Kit','4-dof-robotic-arm-kit','SKU-ARM4',
	   'Servo-driven desktop robotic arm, laser-cut frame','2749','3499',0,
	   '["products/armkit/main.jpg"]','["kit","servo"]','advanced',
	   '[{"part":"SG90 servo","qty":4},{"part":"Acrylic frame","qty":1},{"part":"Driver board","qty":1}]',0)`)

	tx.MustExec(`INSERT INTO courses(id,name,slug,description,duration,category,price,mrp,syllabus_json,is_featured,order_index) VALUES
	  ('crs-arduino','Arduino From Scratch','arduino-from-scratch','Hands-on electronics and C programming','6 weeks','Electronics',
	   '2999','4999','[{"title":"Getting Started","topics":["IDE setup","Digital IO"]},{"title":"Sensors","topics":["Analog reads","I2C basics"]}]',1,1),
	  ('crs-ros','ROS 2 Fundamentals','ros-2-fundamentals','Nodes, topics and simulation','8 weeks','Robotics',
	   '4999','6999','[{"title":"Core Concepts","topics":["Nodes","Topics","Services"]}]',0,2)`)

	tx.MustExec(`INSERT INTO settings(key,value) VALUES
	  ('store_name','RoboMart'),
	  ('contact_email','hello@robomart.test'),
	  ('whatsapp_number','919876543210'),
	  ('website','https://robomart.test'),
	  ('address','42 Maker Street, Kochi, Kerala')`)

	return tx.Commit()
}

// seedUsers ensures one admin, one staff and one customer exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@robomart.test", "Admin", "admin", "Passw0rd!"),
		mk("u-staff", "staff@robomart.test", "Staff", "staff", "Passw0rd!"),
		mk("u-asha", "asha@robomart.test", "Asha", "customer", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash)
			VALUES(?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO user_roles(id,user_id,role)
			VALUES(?,?,?)
			ON CONFLICT(user_id) DO NOTHING
		`, "role-"+x.ID, x.ID, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
