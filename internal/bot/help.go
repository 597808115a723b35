package bot

const helpText = `🆘 Overtime 使用帮助

📥 录入今天加班
• overtime 2.5
  - 默认类型 G1，表示今天加班 2.5 小时
• overtime G2 1.0
  - 显式类型（仅 G1/G2/G3），大小写不敏感

🗓️ 设定某天（覆盖）
• overtime set YYMMDD 2.5
  - 例：overtime set 250824 2.5 → 将 2025-08-24 设为 G1 2.5 小时
• overtime set G2 YYMMDD 1.5
  - 说明：set 为覆盖语义（先删该日全部记录，再插入指定类型与小时）

🧹 删除某天
• overtime del YYMMDD
  - 删除该日所有类型加班记录（若无记录则提示无操作）

📊 查询本月
• overtime query
  - 返回：本月合计、按类型小计（G1/G2/G3）、每日汇总和两张图表

ℹ️ 规则说明
• 日期格式：YYMMDD（按 20YY 解析），如 250824 → 2025-08-24
• 小时数：支持最多两位小数（如 1.5、2.25），必须 > 0
• 同一天多次"录入"会累加；"set"是覆盖
• 查询范围：按自然月统计（Asia/Shanghai 时区）`

const usageText = `❌ 用法：overtime <小时> | overtime G2 <小时> | overtime set [G2] YYMMDD <小时> | overtime del YYMMDD | overtime query | overtime help`
